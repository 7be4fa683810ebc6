package pagination

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// Template and audit-log lists stay small for a single practice, so the
// defaults favor fewer round trips over tiny pages.
const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
)

// Params is the clamped page window a list handler passes to its repository.
type Params struct {
	Page   int
	Limit  int
	Offset int
}

// Parse reads page/limit from the query string. Missing, malformed, or
// out-of-range values fall back to the defaults rather than erroring, so a
// bad query never breaks a listing screen.
func Parse(c *gin.Context) Params {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil || page < 1 {
		page = DefaultPage
	}

	limit, err := strconv.Atoi(c.Query("limit"))
	switch {
	case err != nil || limit < 1:
		limit = DefaultLimit
	case limit > MaxLimit:
		limit = MaxLimit
	}

	return Params{
		Page:   page,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
}
