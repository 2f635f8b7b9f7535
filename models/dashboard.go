package models

import "time"

type Stats struct {
	TotalOmzet    Price `json:"totalOmzet"`
	TotalOrders   int   `json:"totalOrders"`
	FoodsSold     int   `json:"foodsSold"`
	BeveragesSold int   `json:"beveragesSold"`
	DessertSold   int   `json:"dessertSold"`
}

type TopProduct struct {
	Name     string   `json:"name"`
	Category Category `json:"category"`
	Sales    int      `json:"sales"`
}

// DailyOmzet is one day of revenue split by category.
type DailyOmzet struct {
	Date      Day   `json:"date"`
	Foods     Price `json:"foods"`
	Beverages Price `json:"beverages"`
	Dessert   Price `json:"dessert"`
}

func (d DailyOmzet) Total() Price {
	return d.Foods + d.Beverages + d.Dessert
}

const DayLayout = "2006-01-02"

// Day is a calendar date encoded as "2006-01-02".
type Day struct {
	time.Time
}

func NewDay(t time.Time) Day {
	y, m, d := t.Date()
	return Day{time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

func ParseDay(s string) (Day, error) {
	t, err := time.Parse(DayLayout, s)
	if err != nil {
		return Day{}, err
	}
	return Day{t}, nil
}

func (d Day) String() string { return d.Format(DayLayout) }

func (d Day) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Day) UnmarshalJSON(b []byte) error {
	if len(b) < 2 || b[0] != '"' || b[len(b)-1] != '"' {
		return &time.ParseError{Layout: DayLayout, Value: string(b)}
	}
	parsed, err := ParseDay(string(b[1 : len(b)-1]))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
