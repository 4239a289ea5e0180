package a

import (
	"reflect"
	"strings"
)

type seasonalSet struct {
	Default []int
	Winter  []int
}

type table struct {
	Woodlands seasonalSet
	Desert    seasonalSet
}

func byName(t table, category string) seasonalSet {
	v := reflect.ValueOf(t).FieldByName(category) // want "reflect FieldByName used for lookup"
	return v.Interface().(seasonalSet)
}

func byFunc(t table, category string) bool {
	_, ok := reflect.TypeOf(t).FieldByNameFunc(func(s string) bool { // want "reflect FieldByNameFunc used for lookup"
		return strings.EqualFold(s, category)
	})
	return ok
}

type lookup map[string]seasonalSet

func (l lookup) FieldByName(name string) seasonalSet {
	return l[name]
}

func good(l lookup) seasonalSet {
	return l.FieldByName("woodlands")
}

func byIndex(t table) reflect.StructField {
	return reflect.TypeOf(t).Field(0)
}
