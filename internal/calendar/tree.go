package calendar

import (
	"maps"
	"slices"
)

// Tree is the nested encoding of a calendar: year -> month (1-12) -> day (1-31) -> record.
type Tree map[int]Months

type Months map[int]Days

type Days map[int]DayRecord

// Nest folds days into a Tree keyed by the numeric parts of each record's date.
func Nest(days []DayRecord) (Tree, error) {
	tree := Tree{}
	for _, d := range days {
		err := tree.Insert(d)
		if err != nil {
			return nil, err
		}
	}
	return tree, nil
}

// Insert places record at the key derived from its date, replacing any record already there.
func (t Tree) Insert(record DayRecord) error {
	year, month, day, err := ParseDate(record.Date)
	if err != nil {
		return err
	}
	months, ok := t[year]
	if !ok {
		months = Months{}
		t[year] = months
	}
	days, ok := months[month]
	if !ok {
		days = Days{}
		months[month] = days
	}
	days[day] = record
	return nil
}

func (t Tree) Get(year, month, day int) (DayRecord, bool) {
	record, ok := t[year][month][day]
	return record, ok
}

// Len counts the records in the tree.
func (t Tree) Len() int {
	n := 0
	for _, months := range t {
		for _, days := range months {
			n += len(days)
		}
	}
	return n
}

// Merge copies every record of other into t. Records already present in t are kept, the number
// of records from other that were dropped because their key was taken is returned.
func (t Tree) Merge(other Tree) (collisions int) {
	for year, otherMonths := range other {
		months, ok := t[year]
		if !ok {
			months = Months{}
			t[year] = months
		}
		for month, otherDays := range otherMonths {
			days, ok := months[month]
			if !ok {
				days = Days{}
				months[month] = days
			}
			for d, record := range otherDays {
				if _, taken := days[d]; taken {
					collisions++
					continue
				}
				days[d] = record
			}
		}
	}
	return collisions
}

// Flatten lists every record in chronological order.
func (t Tree) Flatten() []DayRecord {
	out := make([]DayRecord, 0, t.Len())
	for _, year := range slices.Sorted(maps.Keys(t)) {
		months := t[year]
		for _, month := range slices.Sorted(maps.Keys(months)) {
			days := months[month]
			for _, d := range slices.Sorted(maps.Keys(days)) {
				out = append(out, days[d])
			}
		}
	}
	return out
}
