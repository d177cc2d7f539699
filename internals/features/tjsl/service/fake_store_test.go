package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tjsl_backend/internals/features/tjsl/dto"
	"tjsl_backend/internals/features/tjsl/model"
	userModel "tjsl_backend/internals/features/users/user/model"
)

// fakeStore: Store in-memory. Transaction menyalin state dan mengembalikannya bila fn gagal.
type fakeStore struct {
	users     map[uuid.UUID]userModel.UserModel
	proposals map[uuid.UUID]model.ProposalModel
	programs  map[uuid.UUID]model.ProgramModel
	reports   []model.ReportModel
	documents []model.DocumentModel

	failSwapProposal error
	now              func() time.Time
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:     map[uuid.UUID]userModel.UserModel{},
		proposals: map[uuid.UUID]model.ProposalModel{},
		programs:  map[uuid.UUID]model.ProgramModel{},
		now:       time.Now,
	}
}

func (f *fakeStore) snapshot() *fakeStore {
	cp := *f
	cp.users = map[uuid.UUID]userModel.UserModel{}
	for k, v := range f.users {
		cp.users[k] = v
	}
	cp.proposals = map[uuid.UUID]model.ProposalModel{}
	for k, v := range f.proposals {
		cp.proposals[k] = v
	}
	cp.programs = map[uuid.UUID]model.ProgramModel{}
	for k, v := range f.programs {
		cp.programs[k] = v
	}
	cp.reports = append([]model.ReportModel(nil), f.reports...)
	cp.documents = append([]model.DocumentModel(nil), f.documents...)
	return &cp
}

func (f *fakeStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	before := f.snapshot()
	if err := fn(f); err != nil {
		*f = *before
		return err
	}
	return nil
}

func (f *fakeStore) addUser(role string, active bool) userModel.UserModel {
	u := userModel.UserModel{ID: uuid.New(), UserName: "u" + uuid.NewString()[:6], Role: role, IsActive: active}
	f.users[u.ID] = u
	return u
}

func (f *fakeStore) FindUser(ctx context.Context, id uuid.UUID) (*userModel.UserModel, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &u, nil
}

func (f *fakeStore) CreateProposal(ctx context.Context, p *model.ProposalModel) error {
	if p.ProposalID == uuid.Nil {
		p.ProposalID = uuid.New()
	}
	p.ProposalCreatedAt = f.now()
	f.proposals[p.ProposalID] = *p
	return nil
}

func (f *fakeStore) FindProposal(ctx context.Context, id uuid.UUID) (*model.ProposalModel, error) {
	p, ok := f.proposals[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &p, nil
}

func (f *fakeStore) ListProposals(ctx context.Context, fl dto.ProposalFilter) ([]model.ProposalModel, int64, error) {
	var out []model.ProposalModel
	for _, p := range f.proposals {
		if fl.Status != "" && p.ProposalStatus != fl.Status {
			continue
		}
		if fl.CreatedBy != nil && p.ProposalCreatedBy != *fl.CreatedBy {
			continue
		}
		out = append(out, p)
	}
	return out, int64(len(out)), nil
}

func (f *fakeStore) UpdateDraftProposal(ctx context.Context, id uuid.UUID, updates map[string]any) (bool, error) {
	p, ok := f.proposals[id]
	if !ok || p.ProposalStatus != model.ProposalStatusDraft {
		return false, nil
	}
	if err := applyProposalUpdates(&p, updates); err != nil {
		return false, err
	}
	f.proposals[id] = p
	return true, nil
}

// applyProposalUpdates meniru UPDATE ... SET per kolom; kolom asing menjadi error.
func applyProposalUpdates(p *model.ProposalModel, updates map[string]any) error {
	strCols := map[string]*string{
		"proposal_title":                &p.ProposalTitle,
		"proposal_pillar":               &p.ProposalPillar,
		"proposal_region":               &p.ProposalRegion,
		"proposal_district":             &p.ProposalDistrict,
		"proposal_village":              &p.ProposalVillage,
		"proposal_rationale":            &p.ProposalRationale,
		"proposal_objectives":           &p.ProposalObjectives,
		"proposal_success_indicators":   &p.ProposalSuccessIndicators,
		"proposal_target_beneficiaries": &p.ProposalTargetBeneficiaries,
	}
	for col, v := range updates {
		var ok bool
		switch col {
		case "proposal_beneficiary_count":
			p.ProposalBeneficiaryCount, ok = v.(int)
		case "proposal_estimated_budget":
			p.ProposalEstimatedBudget, ok = v.(float64)
		case "proposal_estimated_start_date":
			p.ProposalEstimatedStartDate, ok = v.(time.Time)
		case "proposal_estimated_end_date":
			p.ProposalEstimatedEndDate, ok = v.(time.Time)
		default:
			dst, known := strCols[col]
			if !known {
				return fmt.Errorf("unknown column %q", col)
			}
			*dst, ok = v.(string)
		}
		if !ok {
			return fmt.Errorf("column %s: unexpected type %T", col, v)
		}
	}
	return nil
}

func (f *fakeStore) DeleteDraftProposal(ctx context.Context, id uuid.UUID) (bool, error) {
	p, ok := f.proposals[id]
	if !ok || p.ProposalStatus != model.ProposalStatusDraft {
		return false, nil
	}
	delete(f.proposals, id)
	return true, nil
}

func (f *fakeStore) SwapProposalStatus(ctx context.Context, id uuid.UUID, from, to string) (bool, error) {
	if f.failSwapProposal != nil {
		return false, f.failSwapProposal
	}
	p, ok := f.proposals[id]
	if !ok || p.ProposalStatus != from {
		return false, nil
	}
	p.ProposalStatus = to
	f.proposals[id] = p
	return true, nil
}

func (f *fakeStore) CountProposalsByStatus(ctx context.Context, createdBy *uuid.UUID) (map[string]int64, error) {
	out := map[string]int64{}
	for _, p := range f.proposals {
		if createdBy != nil && p.ProposalCreatedBy != *createdBy {
			continue
		}
		out[p.ProposalStatus]++
	}
	return out, nil
}

func (f *fakeStore) CreateProgram(ctx context.Context, p *model.ProgramModel) error {
	for _, existing := range f.programs {
		if existing.ProgramProposalID == p.ProgramProposalID {
			return errors.New("duplicate program_proposal_id")
		}
	}
	if p.ProgramID == uuid.Nil {
		p.ProgramID = uuid.New()
	}
	if p.ProgramCreatedAt.IsZero() {
		p.ProgramCreatedAt = f.now()
	}
	f.programs[p.ProgramID] = *p
	return nil
}

func (f *fakeStore) FindProgram(ctx context.Context, id uuid.UUID) (*model.ProgramModel, error) {
	p, ok := f.programs[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &p, nil
}

func (f *fakeStore) ListPrograms(ctx context.Context, fl dto.ProgramFilter) ([]model.ProgramModel, int64, error) {
	var out []model.ProgramModel
	for _, p := range f.programs {
		if fl.Status != "" && p.ProgramStatus != fl.Status {
			continue
		}
		if fl.ResponsibleUserID != nil && p.ProgramResponsibleUserID != *fl.ResponsibleUserID {
			continue
		}
		out = append(out, p)
	}
	return out, int64(len(out)), nil
}

func (f *fakeStore) SwapProgramStatus(ctx context.Context, id uuid.UUID, from, to string) (bool, error) {
	p, ok := f.programs[id]
	if !ok || p.ProgramStatus != from {
		return false, nil
	}
	p.ProgramStatus = to
	f.programs[id] = p
	return true, nil
}

func (f *fakeStore) CountProgramsByStatus(ctx context.Context, responsible *uuid.UUID) (map[string]int64, error) {
	out := map[string]int64{}
	for _, p := range f.programs {
		if responsible != nil && p.ProgramResponsibleUserID != *responsible {
			continue
		}
		out[p.ProgramStatus]++
	}
	return out, nil
}

func (f *fakeStore) SumFinalBudget(ctx context.Context, responsible *uuid.UUID) (float64, error) {
	var total float64
	for _, p := range f.programs {
		if responsible != nil && p.ProgramResponsibleUserID != *responsible {
			continue
		}
		total += p.ProgramFinalBudget
	}
	return total, nil
}

func (f *fakeStore) LastReportTimes(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]time.Time, error) {
	want := map[uuid.UUID]bool{}
	for _, id := range ids {
		want[id] = true
	}
	out := map[uuid.UUID]time.Time{}
	for _, r := range f.reports {
		if !want[r.ReportProgramID] {
			continue
		}
		if cur, ok := out[r.ReportProgramID]; !ok || r.ReportCreatedAt.After(cur) {
			out[r.ReportProgramID] = r.ReportCreatedAt
		}
	}
	return out, nil
}

func (f *fakeStore) CreateReport(ctx context.Context, r *model.ReportModel) error {
	r.ReportID = uuid.New()
	if r.ReportCreatedAt.IsZero() {
		r.ReportCreatedAt = f.now()
	}
	f.reports = append(f.reports, *r)
	return nil
}

func (f *fakeStore) ListReports(ctx context.Context, programID uuid.UUID, reportType string) ([]model.ReportModel, error) {
	var out []model.ReportModel
	for _, r := range f.reports {
		if r.ReportProgramID != programID {
			continue
		}
		if reportType != "" && r.ReportType != reportType {
			continue
		}
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ReportCreatedAt.After(out[j].ReportCreatedAt) })
	return out, nil
}

func (f *fakeStore) CreateDocument(ctx context.Context, d *model.DocumentModel) error {
	d.DocumentID = uuid.New()
	d.DocumentCreatedAt = f.now()
	f.documents = append(f.documents, *d)
	return nil
}

func (f *fakeStore) ListDocuments(ctx context.Context, programID uuid.UUID) ([]model.DocumentModel, error) {
	var out []model.DocumentModel
	for _, d := range f.documents {
		if d.DocumentProgramID == programID {
			out = append(out, d)
		}
	}
	return out, nil
}
