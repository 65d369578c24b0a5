package registry

import (
	"net/url"
	"testing"
)

func TestResolveFilters_AllActive(t *testing.T) {
	values := url.Values{
		"region":          {"5"},
		"specialty_group": {"12"},
		"specialty":       {"340"},
	}

	f := ResolveFilters(values)

	if f.RegionID == nil || *f.RegionID != 5 {
		t.Errorf("RegionID = %v, ожидается 5", f.RegionID)
	}
	if f.SpecialtyGroupID == nil || *f.SpecialtyGroupID != 12 {
		t.Errorf("SpecialtyGroupID = %v, ожидается 12", f.SpecialtyGroupID)
	}
	if f.SpecialtyID == nil || *f.SpecialtyID != 340 {
		t.Errorf("SpecialtyID = %v, ожидается 340", f.SpecialtyID)
	}
	if !f.HasProgramJoin() {
		t.Error("HasProgramJoin() = false, ожидается true при фильтре по специальности")
	}
}

func TestResolveFilters_ZeroMeansOff(t *testing.T) {
	values := url.Values{
		"region":          {"0"},
		"specialty_group": {"0"},
		"specialty":       {"0"},
	}

	f := ResolveFilters(values)

	if !f.IsEmpty() {
		t.Errorf("фильтры со значением \"0\" должны быть выключены, получено %+v", f)
	}
}

func TestResolveFilters_MalformedValues(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"пустое значение", ""},
		{"нечисловое значение", "abc"},
		{"отрицательное значение", "-3"},
		{"дробное значение", "1.5"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := ResolveFilters(url.Values{"region": {tc.raw}})
			if f.RegionID != nil {
				t.Errorf("RegionID = %v, ожидается nil для %q", *f.RegionID, tc.raw)
			}
		})
	}
}

func TestResolveFilters_UnknownKeysIgnored(t *testing.T) {
	values := url.Values{
		"city":   {"7"},
		"region": {"3"},
	}

	f := ResolveFilters(values)

	if f.RegionID == nil || *f.RegionID != 3 {
		t.Errorf("RegionID = %v, ожидается 3", f.RegionID)
	}
	if f.SpecialtyGroupID != nil || f.SpecialtyID != nil {
		t.Error("нераспознанный ключ не должен активировать другие фильтры")
	}
}

func TestResolveFilters_RegionOnlyNoProgramJoin(t *testing.T) {
	f := ResolveFilters(url.Values{"region": {"5"}})

	if f.HasProgramJoin() {
		t.Error("фильтр только по региону не должен требовать JOIN через программы")
	}
}
