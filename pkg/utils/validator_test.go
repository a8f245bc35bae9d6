package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type slugFixture struct {
	Slug string `validate:"required,slug"`
}

func TestSlugValidation(t *testing.T) {
	valid := []string{"drama", "sci-fi", "top_10", "k9"}
	for _, slug := range valid {
		assert.Nil(t, ValidateStruct(slugFixture{Slug: slug}), "%q should be a valid slug", slug)
	}

	invalid := []string{"", "Drama", "sci fi", "comédie", "slash/slug"}
	for _, slug := range invalid {
		assert.NotEmpty(t, ValidateStruct(slugFixture{Slug: slug}), "%q should be rejected", slug)
	}
}

func TestValidateStructReportsFields(t *testing.T) {
	type fixture struct {
		Email string `validate:"required,email"`
		Score int    `validate:"min=1,max=10"`
	}

	errs := ValidateStruct(fixture{Email: "not-an-email", Score: 11})
	assert.Contains(t, errs, "Email")
	assert.Contains(t, errs, "Score")

	assert.Nil(t, ValidateStruct(fixture{Email: "a@b.dev", Score: 5}))
}
