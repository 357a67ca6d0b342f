// Package yellowpages implements the yellow-pages model (component C):
// companies, rubrics, the company filter, and the working-hours
// earliest-arrival wait computation.
package yellowpages

import "transitcatalog/internal/domain"

// Directory holds the frozen yellow-pages data. Companies are kept in
// request (ingestion) order since that order decides tie-breaks in
// earliest-arrival search.
type Directory struct {
	Rubrics   map[uint64]domain.Rubric
	Companies []domain.Company
}

// RubricIDByName builds the name->id lookup BuildRubricsNum needs,
// grounded on the original's `um` parameter, which maps a rubric's
// display name back to its numeric id.
func (d *Directory) RubricIDByName() map[string]uint64 {
	out := make(map[string]uint64, len(d.Rubrics))
	for id, r := range d.Rubrics {
		out[r.Name] = id
	}
	return out
}

// Query is a company filter: for each non-empty field, at least one of
// the company's corresponding entries must match (existential per
// criterion, conjunction across criteria). An empty field is trivially
// satisfied. RubricNames is resolved against a Directory's rubric table
// at filter time; a name with no matching rubric simply never matches.
type Query struct {
	Names       []string
	URLs        []string
	RubricNames []string
	Phones      []domain.QueryPhone
}

// Filter returns the indexes into dir.Companies of every company
// matching q.
func Filter(dir *Directory, q Query) []int {
	rubricIDs := resolveRubricIDs(dir, q.RubricNames)
	var out []int
	for i := range dir.Companies {
		if matches(&dir.Companies[i], q, rubricIDs) {
			out = append(out, i)
		}
	}
	return out
}

func resolveRubricIDs(dir *Directory, names []string) []uint64 {
	if len(names) == 0 {
		return nil
	}
	byName := dir.RubricIDByName()
	ids := make([]uint64, 0, len(names))
	for _, n := range names {
		if id, ok := byName[n]; ok {
			ids = append(ids, id)
		}
	}
	return ids
}

func matches(c *domain.Company, q Query, rubricIDs []uint64) bool {
	if len(q.Names) > 0 && !anyNameMatches(c, q.Names) {
		return false
	}
	if len(q.URLs) > 0 && !anyURLMatches(c, q.URLs) {
		return false
	}
	if len(q.RubricNames) > 0 && !anyRubricMatches(c, rubricIDs) {
		return false
	}
	if len(q.Phones) > 0 && !anyPhoneMatches(c, q.Phones) {
		return false
	}
	return true
}

func anyNameMatches(c *domain.Company, names []string) bool {
	for _, want := range names {
		for _, n := range c.Names {
			if n.Value == want {
				return true
			}
		}
	}
	return false
}

func anyURLMatches(c *domain.Company, urls []string) bool {
	for _, want := range urls {
		for _, u := range c.URLs {
			if u == want {
				return true
			}
		}
	}
	return false
}

func anyRubricMatches(c *domain.Company, rubrics []uint64) bool {
	for _, want := range rubrics {
		for _, r := range c.Rubrics {
			if r == want {
				return true
			}
		}
	}
	return false
}

func anyPhoneMatches(c *domain.Company, queries []domain.QueryPhone) bool {
	for _, q := range queries {
		for _, p := range c.Phones {
			if doesPhoneMatch(q, p) {
				return true
			}
		}
	}
	return false
}

// doesPhoneMatch follows DoesPhoneMatch's exact rule order: number is
// always required equal; extension/type/country_code are only checked
// when the query supplies them; local_code is checked whenever the query
// supplies either country_code or local_code.
func doesPhoneMatch(q domain.QueryPhone, p domain.Phone) bool {
	if q.HasExtension && q.Extension != p.Extension {
		return false
	}
	if q.HasType && q.Type != p.Type {
		return false
	}
	if q.CountryCode != "" && q.CountryCode != p.CountryCode {
		return false
	}
	if (q.LocalCode != "" || q.CountryCode != "") && q.LocalCode != p.LocalCode {
		return false
	}
	return q.Number == p.Number
}

const minutesPerDay = 1440.0
const minutesPerWeek = 7 * minutesPerDay

// WaitForOpen computes how many minutes a traveler arriving at finish
// (minutes from week start) must wait for wt to be open. Mirrors
// Company::WaitForCompanyOpen exactly, including the everyday fold and
// the weekly/everyday wrap-around.
func WaitForOpen(wt domain.WorkingTime, finish float64) float64 {
	if len(wt.Intervals) == 0 {
		return 0
	}
	period := minutesPerWeek
	if wt.IsEveryday {
		period = minutesPerDay
		finish = mod(finish, minutesPerDay)
	}

	for _, iv := range wt.Intervals {
		if iv.MinutesTo >= finish {
			if finish >= iv.MinutesFrom {
				return 0
			}
			return iv.MinutesFrom - finish
		}
	}
	return period - finish + wt.Intervals[0].MinutesFrom
}

func mod(a, m float64) float64 {
	r := a
	for r >= m {
		r -= m
	}
	for r < 0 {
		r += m
	}
	return r
}
