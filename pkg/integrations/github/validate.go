package github

import (
	"regexp"
	"strings"

	"github.com/matzehuels/netscore/pkg/errors"
)

var (
	// GitHub usernames/orgs: 1-39 alphanumeric or hyphen, not starting with hyphen
	validOwner = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9-]{0,38}$`)
	// GitHub repo names: 1-100 alphanumeric, hyphen, underscore, or dot
	validRepo = regexp.MustCompile(`^[a-zA-Z0-9._-]{1,100}$`)
)

// ValidateOwner validates a GitHub username or organization name.
func ValidateOwner(owner string) error {
	if owner == "" {
		return errors.New(errors.ErrCodeInvalidInput, "owner is required")
	}
	if !validOwner.MatchString(owner) {
		return errors.New(errors.ErrCodeInvalidInput, "invalid owner %q", owner)
	}
	return nil
}

// ValidateRepo validates a GitHub repository name.
func ValidateRepo(repo string) error {
	if repo == "" {
		return errors.New(errors.ErrCodeInvalidInput, "repo is required")
	}
	if repo == "." || repo == ".." || !validRepo.MatchString(repo) {
		return errors.New(errors.ErrCodeInvalidInput, "invalid repo %q", repo)
	}
	return nil
}

// ValidateRepoRef validates both owner and repo parameters.
func ValidateRepoRef(owner, repo string) error {
	if err := ValidateOwner(owner); err != nil {
		return err
	}
	return ValidateRepo(repo)
}

// ParseRepoRef parses an "owner/repo" string and validates both parts.
func ParseRepoRef(ref string) (owner, repo string, err error) {
	parts := strings.SplitN(ref, "/", 2)
	if len(parts) != 2 {
		return "", "", errors.New(errors.ErrCodeInvalidInput, "expected owner/repo, got %q", ref)
	}
	if err := ValidateRepoRef(parts[0], parts[1]); err != nil {
		return "", "", err
	}
	return parts[0], parts[1], nil
}
