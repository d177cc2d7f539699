// file: internals/seeds/seed_file.go
package seeds

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	aiSeed "tjsl_backend/internals/seeds/ai"
	userSeed "tjsl_backend/internals/seeds/users"
)

// SeedFile = isi SEED_FILE (yaml).
//
//	users:
//	  - user_name: admin
//	    email: admin@example.com
//	    password: Rahasia123
//	    role: ADMIN
//	prompts:
//	  - name: Asisten TJSL
//	    provider: OPENAI
//	    model: gpt-4o-mini
//	    template: |
//	      Data program: {context}
//	      Pertanyaan: {userMessage}
type SeedFile struct {
	Users   []userSeed.UserSeed `yaml:"users"`
	Prompts []aiSeed.PromptSeed `yaml:"prompts"`
}

func ParseSeedFile(data []byte) (SeedFile, error) {
	var f SeedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return f, fmt.Errorf("decode seed yaml: %w", err)
	}
	for i, u := range f.Users {
		if u.UserName == "" || u.Email == "" || u.Password == "" {
			return f, fmt.Errorf("users[%d]: user_name, email dan password wajib", i)
		}
	}
	for i, p := range f.Prompts {
		if p.Name == "" || p.Provider == "" || p.Model == "" || p.Template == "" {
			return f, fmt.Errorf("prompts[%d]: name, provider, model dan template wajib", i)
		}
	}
	return f, nil
}

func LoadSeedFile(path string) (SeedFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return SeedFile{}, fmt.Errorf("baca seed file: %w", err)
	}
	return ParseSeedFile(data)
}
