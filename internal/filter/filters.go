package filter

import "github.com/siahsang/conduit/internal/validator"

const MaxLimit = 100

// Pagination uses limit/offset semantics. A zero Limit means no limit.
type Pagination struct {
	Limit  int64
	Offset int64
}

func NewPagination(limit, offset int64) Pagination {
	return Pagination{
		Limit:  limit,
		Offset: offset,
	}
}

func ValidatePagination(p Pagination, v *validator.Validator) {
	v.Check(p.Limit >= 0, "limit", "must be greater than or equal to 0")
	v.Check(p.Limit <= MaxLimit, "limit", "must be a maximum of 100")
	v.Check(p.Offset >= 0, "offset", "must be greater than or equal to 0")
	v.Check(p.Offset <= 10_000_000, "offset", "must be a maximum of 10_000_000")
}

// IDConstraint restricts a query to a set of ids.
// The zero value restricts nothing; an active constraint over an empty set matches no rows.
type IDConstraint struct {
	Active bool
	IDs    []int64
}

func Only(ids ...int64) IDConstraint {
	return IDConstraint{Active: true, IDs: ids}
}

// MatchesNothing reports whether the constraint can only produce an empty result.
func (c IDConstraint) MatchesNothing() bool {
	return c.Active && len(c.IDs) == 0
}

// ArticleFilter holds independently optional predicates, combined with AND.
type ArticleFilter struct {
	Tag        string
	Author     string
	ArticleIDs IDConstraint
	AuthorIDs  IDConstraint
}
