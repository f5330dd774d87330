package engine

import (
	"time"

	"github.com/ppiankov/veridex/internal/model"
)

// TimeRange limits how far back analyses are considered
type TimeRange string

const (
	RangeAll    TimeRange = "all"
	Range30Days TimeRange = "30d"
	Range90Days TimeRange = "90d"
	Range1Year  TimeRange = "1y"
)

// Since resolves the range to a cutoff instant; zero means unbounded
func (r TimeRange) Since(now time.Time) time.Time {
	switch r {
	case Range30Days:
		return now.AddDate(0, 0, -30)
	case Range90Days:
		return now.AddDate(0, 0, -90)
	case Range1Year:
		return now.AddDate(-1, 0, 0)
	default:
		return time.Time{}
	}
}

// SortBy selects the ranking key
type SortBy string

const (
	SortByGrade    SortBy = "grade"    // numeric composite score
	SortByArticles SortBy = "articles" // analysis count
	SortByRecent   SortBy = "recent"   // last analysis time
)

// SortOrder is ascending or descending
type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// Query filters, sorts, and paginates the ranked source list
type Query struct {
	MinArticles int
	TimeRange   TimeRange
	ArticleType string
	SortBy      SortBy
	SortOrder   SortOrder
	Limit       int
	Offset      int
}

// defaultLimit caps unpaginated queries
const defaultLimit = 50

func (q Query) normalized() Query {
	if q.TimeRange == "" {
		q.TimeRange = RangeAll
	}
	if q.SortBy == "" {
		q.SortBy = SortByGrade
	}
	if q.SortOrder == "" {
		q.SortOrder = OrderDesc
	}
	if q.Limit <= 0 {
		q.Limit = defaultLimit
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
	if q.MinArticles < 1 {
		q.MinArticles = 1
	}
	return q
}

// Result is the ranked, paginated answer to a source-stats query
type Result struct {
	Sources    []model.SourceStats `json:"sources"`
	Total      int                 `json:"total"`
	GlobalMean float64             `json:"global_mean"`
}
