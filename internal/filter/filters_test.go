package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/siahsang/conduit/internal/validator"
)

func TestValidatePagination(t *testing.T) {
	tests := []struct {
		name   string
		page   Pagination
		fields []string
	}{
		{name: "absent", page: NewPagination(0, 0)},
		{name: "within bounds", page: NewPagination(20, 40)},
		{name: "negative limit", page: NewPagination(-1, 0), fields: []string{"limit"}},
		{name: "limit over max", page: NewPagination(101, 0), fields: []string{"limit"}},
		{name: "negative offset", page: NewPagination(10, -5), fields: []string{"offset"}},
		{name: "both invalid", page: NewPagination(-1, -1), fields: []string{"limit", "offset"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := validator.New()
			ValidatePagination(tt.page, v)
			assert.Len(t, v.Errors, len(tt.fields))
			for _, field := range tt.fields {
				assert.Contains(t, v.Errors, field)
			}
		})
	}
}

func TestIDConstraint(t *testing.T) {
	assert.False(t, IDConstraint{}.MatchesNothing())
	assert.True(t, Only().MatchesNothing())
	assert.False(t, Only(1, 2).MatchesNothing())
	assert.True(t, Only(3).Active)
}
