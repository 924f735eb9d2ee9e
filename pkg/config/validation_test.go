package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateRepo(t *testing.T) {
	tests := []struct {
		name      string
		repo      string
		wantError bool
	}{
		{name: "local path", repo: "/tmp/some-repo", wantError: false},
		{name: "relative path", repo: "./repo", wantError: false},
		{name: "https url", repo: "https://github.com/acme/repo.git", wantError: false},
		{name: "http url", repo: "http://git.internal/repo.git", wantError: false},
		{name: "empty", repo: "", wantError: true},
		{name: "https url without host", repo: "https://", wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRepo(tt.repo)
			if tt.wantError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateCommitCount(t *testing.T) {
	assert.NoError(t, ValidateCommitCount(1))
	assert.NoError(t, ValidateCommitCount(500))
	assert.Error(t, ValidateCommitCount(0))
	assert.Error(t, ValidateCommitCount(-3))
}

func TestValidateThreadCount(t *testing.T) {
	assert.NoError(t, ValidateThreadCount(1))
	assert.NoError(t, ValidateThreadCount(100))
	assert.Error(t, ValidateThreadCount(0))
	assert.Error(t, ValidateThreadCount(101))
}

func TestValidateOutputPath(t *testing.T) {
	assert.NoError(t, ValidateOutputPath("report.json"))
	assert.NoError(t, ValidateOutputPath("/tmp/out/report.json"))
	assert.Error(t, ValidateOutputPath(""))
}
