package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidCode(t *testing.T) {
	valid := []string{"CS", "CS101", "CS-BS", "ceng", "  math101  ", "A1-B2-C3"}
	for _, code := range valid {
		assert.True(t, IsValidCode(code), "expected %q to be valid", code)
	}

	invalid := []string{"", "   ", "CS 101", "CS_", "-CS", "CS-", "CS--BS", "çs101"}
	for _, code := range invalid {
		assert.False(t, IsValidCode(code), "expected %q to be invalid", code)
	}
}

func TestNormalizeCode(t *testing.T) {
	assert.Equal(t, "CENG", NormalizeCode("  ceng  "))
	assert.Equal(t, "CS-BS", NormalizeCode("cs-bs"))
	assert.Equal(t, "", NormalizeCode("   "))
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("student@university.edu"))
	assert.True(t, IsValidEmail("  First.Last+tag@sub.example.com  "))
	assert.False(t, IsValidEmail("not-an-email"))
	assert.False(t, IsValidEmail("missing@tld"))
	assert.False(t, IsValidEmail("@example.com"))
}

func TestIsValidAssignmentRole(t *testing.T) {
	assert.True(t, IsValidAssignmentRole("lecturer"))
	assert.True(t, IsValidAssignmentRole(" Coordinator "))
	assert.True(t, IsValidAssignmentRole("ADVISOR"))
	assert.False(t, IsValidAssignmentRole("dean"))
	assert.False(t, IsValidAssignmentRole(""))
}
