package integrations_test

import (
	"fmt"

	"github.com/matzehuels/netscore/pkg/integrations"
)

func ExampleNormalizeRepoURL() {
	// Various repository URL formats are normalized to HTTPS
	fmt.Println(integrations.NormalizeRepoURL("git@github.com:user/repo.git"))
	fmt.Println(integrations.NormalizeRepoURL("git://github.com/user/repo"))
	fmt.Println(integrations.NormalizeRepoURL("git+https://github.com/user/repo.git"))
	fmt.Println(integrations.NormalizeRepoURL("git+ssh://git@github.com/user/repo.git"))
	fmt.Println(integrations.NormalizeRepoURL("git+ssh://git@github.com:user/repo.git"))
	fmt.Println(integrations.NormalizeRepoURL("https://github.com/user/repo"))
	// Output:
	// https://github.com/user/repo
	// https://github.com/user/repo
	// https://github.com/user/repo
	// https://github.com/user/repo
	// https://github.com/user/repo
	// https://github.com/user/repo
}

func ExampleExtractField() {
	fmt.Println(integrations.ExtractField("MIT", "type"))
	fmt.Println(integrations.ExtractField(map[string]any{"type": "git", "url": "git+https://github.com/a/b.git"}, "url"))
	fmt.Println(integrations.ExtractField(42, "url") == "")
	// Output:
	// MIT
	// git+https://github.com/a/b.git
	// true
}
