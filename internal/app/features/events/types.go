package events

import "github.com/ellarises/ellahub/internal/app/system/formutil"

type eventRow struct {
	ID       int64
	Name     string
	TypeName string
	Date     string
	Time     string
	Location string
	Capacity string
	Deadline string
}

type listData struct {
	formutil.Base

	SearchColumn string
	SearchValue  string

	Types     []formutil.Option
	Locations []formutil.Option
	Months    []formutil.Option
	Years     []formutil.Option

	SortColumn string
	SortOrder  string

	Rows  []eventRow
	Shown int
}
