// Package directory implements the admin dashboard's user query pipeline:
// search, status filter, tier filter, sort and pagination over a user list.
// None of the functions mutate their input slice.
package directory

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/sefazor/starclub-backend/internal/loyalty"
	"github.com/sefazor/starclub-backend/internal/models"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	DefaultSort     = FieldName
)

type SortField string

const (
	FieldName               SortField = "name"
	FieldEmail              SortField = "email"
	FieldPhone              SortField = "phone"
	FieldFavoriteRestaurant SortField = "favorite_restaurant"
	FieldStatus             SortField = "status"
	FieldTier               SortField = "tier"
	FieldTotalVisits        SortField = "total_visits"
	FieldTotalStars         SortField = "total_stars"
	FieldJoinDate           SortField = "join_date"
	FieldLastVisit          SortField = "last_visit"
)

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// compare returns <0, 0 or >0 in the field's natural ascending order.
type compareFunc func(a, b *models.User) int

var comparators = map[SortField]compareFunc{
	FieldName:               func(a, b *models.User) int { return strings.Compare(a.Name, b.Name) },
	FieldEmail:              func(a, b *models.User) int { return strings.Compare(a.Email, b.Email) },
	FieldPhone:              func(a, b *models.User) int { return strings.Compare(a.Phone, b.Phone) },
	FieldFavoriteRestaurant: func(a, b *models.User) int { return strings.Compare(a.FavoriteRestaurant, b.FavoriteRestaurant) },
	FieldStatus:             func(a, b *models.User) int { return strings.Compare(string(a.Status), string(b.Status)) },
	FieldTier:               func(a, b *models.User) int { return loyalty.Rank(a.Tier) - loyalty.Rank(b.Tier) },
	FieldTotalVisits:        func(a, b *models.User) int { return a.TotalVisits - b.TotalVisits },
	FieldTotalStars:         func(a, b *models.User) int { return a.TotalStars - b.TotalStars },
	FieldJoinDate:           func(a, b *models.User) int { return a.JoinDate.Compare(b.JoinDate) },
	FieldLastVisit:          func(a, b *models.User) int { return a.LastVisit.Compare(b.LastVisit) },
}

func IsSortField(s string) bool {
	_, ok := comparators[SortField(s)]
	return ok
}

func IsDirection(s string) bool {
	return s == string(Asc) || s == string(Desc)
}

func IsStatusFilter(s string) bool {
	return s == models.FilterAll || s == string(models.StatusActive) || s == string(models.StatusInactive)
}

func IsTierFilter(s string) bool {
	if s == models.FilterAll {
		return true
	}
	_, err := loyalty.ParseTier(s)
	return err == nil
}

// Search keeps users whose name or email contains query, ignoring case.
func Search(users []models.User, query string) []models.User {
	if query == "" {
		return clone(users)
	}
	q := strings.ToLower(query)
	out := make([]models.User, 0, len(users))
	for _, u := range users {
		if strings.Contains(strings.ToLower(u.Name), q) || strings.Contains(strings.ToLower(u.Email), q) {
			out = append(out, u)
		}
	}
	return out
}

func FilterByStatus(users []models.User, status string) ([]models.User, error) {
	if !IsStatusFilter(status) {
		return nil, fmt.Errorf("%w: unknown status %q", models.ErrInvalidInput, status)
	}
	if status == models.FilterAll {
		return clone(users), nil
	}
	out := make([]models.User, 0, len(users))
	for _, u := range users {
		if string(u.Status) == status {
			out = append(out, u)
		}
	}
	return out, nil
}

func FilterByTier(users []models.User, tier string) ([]models.User, error) {
	if !IsTierFilter(tier) {
		return nil, fmt.Errorf("%w: unknown tier %q", models.ErrInvalidInput, tier)
	}
	if tier == models.FilterAll {
		return clone(users), nil
	}
	out := make([]models.User, 0, len(users))
	for _, u := range users {
		if string(u.Tier) == tier {
			out = append(out, u)
		}
	}
	return out, nil
}

// Sort orders users by field. Equal keys keep their input order in both
// directions.
func Sort(users []models.User, field SortField, dir Direction) ([]models.User, error) {
	cmp, ok := comparators[field]
	if !ok {
		return nil, fmt.Errorf("%w: unknown sort field %q", models.ErrInvalidInput, field)
	}
	if !IsDirection(string(dir)) {
		return nil, fmt.Errorf("%w: unknown sort direction %q", models.ErrInvalidInput, dir)
	}

	out := clone(users)
	sort.SliceStable(out, func(i, j int) bool {
		c := cmp(&out[i], &out[j])
		if dir == Desc {
			return c > 0
		}
		return c < 0
	})
	return out, nil
}

type Page struct {
	Users      []models.User
	Total      int
	Page       int
	PageSize   int
	TotalPages int
}

// Paginate returns the 1-indexed page of users. Pages past the end are empty.
func Paginate(users []models.User, page, pageSize int) (Page, error) {
	if page < 1 || pageSize < 1 {
		return Page{}, fmt.Errorf("%w: page %d, page size %d", models.ErrInvalidInput, page, pageSize)
	}

	total := len(users)
	p := Page{
		Users:      []models.User{},
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: int(math.Ceil(float64(total) / float64(pageSize))),
	}

	// Checked before multiplying so huge page numbers cannot overflow.
	if page > p.TotalPages {
		return p, nil
	}
	start := (page - 1) * pageSize
	end := start + pageSize
	if end > total {
		end = total
	}
	p.Users = clone(users[start:end])
	return p, nil
}

type Query struct {
	Search   string
	Status   string
	Tier     string
	Sort     SortField
	Dir      Direction
	Page     int
	PageSize int
}

func (q Query) withDefaults() Query {
	if q.Status == "" {
		q.Status = models.FilterAll
	}
	if q.Tier == "" {
		q.Tier = models.FilterAll
	}
	if q.Sort == "" {
		q.Sort = DefaultSort
	}
	if q.Dir == "" {
		q.Dir = Asc
	}
	if q.Page == 0 {
		q.Page = DefaultPage
	}
	if q.PageSize == 0 {
		q.PageSize = DefaultPageSize
	}
	return q
}

// Filter runs search, status filter, tier filter and sort, in that order.
func Filter(users []models.User, q Query) ([]models.User, error) {
	q = q.withDefaults()

	result := Search(users, q.Search)
	result, err := FilterByStatus(result, q.Status)
	if err != nil {
		return nil, err
	}
	if result, err = FilterByTier(result, q.Tier); err != nil {
		return nil, err
	}
	return Sort(result, q.Sort, q.Dir)
}

// Apply is Filter followed by pagination.
func Apply(users []models.User, q Query) (Page, error) {
	q = q.withDefaults()
	result, err := Filter(users, q)
	if err != nil {
		return Page{}, err
	}
	return Paginate(result, q.Page, q.PageSize)
}

func clone(users []models.User) []models.User {
	out := make([]models.User, len(users))
	copy(out, users)
	return out
}
