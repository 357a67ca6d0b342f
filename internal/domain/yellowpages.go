package domain

// AddressComponentType is the closed set of structured address part kinds.
type AddressComponentType int

const (
	AddressCountry AddressComponentType = iota
	AddressRegion
	AddressCity
	AddressStreet
	AddressHouse
)

type AddressComponent struct {
	Value string
	Type  AddressComponentType
}

// Address holds both a human-formatted string and structured components.
// Coords starts as (lat, lon) and is overwritten in place with pixel
// coordinates by layout commit (§4.E phase 5, §9 open question) — the
// field names stay Lat/Lon throughout, only their meaning changes.
type Address struct {
	Formatted  string
	Components []AddressComponent
	Coords     LatLon
	Comment    string
}

type NameType int

const (
	NameMain NameType = iota
	NameSynonym
	NameShort
)

type Name struct {
	Value string
	Type  NameType
}

type PhoneType int

const (
	PhonePhone PhoneType = iota
	PhoneFax
)

type Phone struct {
	Formatted   string
	Type        PhoneType
	CountryCode string
	LocalCode   string
	Number      string
	Extension   string
	Description string
}

// QueryPhone is a phone-match criterion: every field is optional except
// Number, which is always required to match (§4.C).
type QueryPhone struct {
	Type         PhoneType
	HasType      bool
	CountryCode  string
	LocalCode    string
	Number       string
	Extension    string
	HasExtension bool
}

// WorkingTimeInterval is one open interval, in minutes from week start.
type WorkingTimeInterval struct {
	MinutesFrom float64
	MinutesTo   float64
}

// WorkingTime is a company's calendar. IsEveryday means every interval
// repeats daily and MinutesFrom/MinutesTo are minutes-from-midnight;
// otherwise they are minutes-from-week-start and Intervals must be kept
// sorted by MinutesTo (an invariant enforced at build time).
type WorkingTime struct {
	IsEveryday bool
	Intervals  []WorkingTimeInterval
}

type NearbyStop struct {
	Name   string
	Meters int
}

// Rubric is a category a company can belong to.
type Rubric struct {
	Name     string
	Keywords map[string]bool
}

// Company is a yellow-pages entry.
type Company struct {
	Address     Address
	Names       []Name
	Phones      []Phone
	URLs        []string
	Rubrics     []uint64
	WorkingTime WorkingTime
	NearbyStops []NearbyStop
}

// MainName returns the first Name with Type == NameMain, or "" if none.
func (c *Company) MainName() string {
	for _, n := range c.Names {
		if n.Type == NameMain {
			return n.Value
		}
	}
	return ""
}
