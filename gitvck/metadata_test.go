package gitvck

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStaticVersionerMethod(t *testing.T) {
	sv := StaticVersioner{Versions: map[string]string{"project-spam": "1.2.3"}}

	v, err := sv.Version("project-spam")
	assert.NoError(t, err)
	assert.Equal(t, "1.2.3", v)

	_, err = sv.Version("project-eggs")
	assert.Equal(t, ErrNotInstalled, err)
}

func TestBuildInfoVersionerMethod_NotInstalled(t *testing.T) {
	bv := BuildInfoVersioner{}

	// The test binary cannot have this module in its build metadata.
	_, err := bv.Version("definitely-not-an-installed-project")
	assert.Equal(t, ErrNotInstalled, err)
}
