package scan

import "testing"

func TestReportable(t *testing.T) {
	t.Parallel()

	empty := &Result{Game: "foo"}
	if empty.Reportable() {
		t.Fatal("a scan that found nothing should not be reportable")
	}

	withFile := &Result{Game: "foo", Files: []File{{Path: "/f", Size: 1, Hash: "1"}}}
	if !withFile.Reportable() {
		t.Fatal("a scan with files should be reportable")
	}

	withRegistry := &Result{Game: "foo", Registry: []RegistryKey{{Path: "HKEY_CURRENT_USER/Key1"}}}
	if !withRegistry.Reportable() {
		t.Fatal("a scan with registry keys should be reportable")
	}
}

func TestOverallChange(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		res  *Result
		want Change
	}{
		{
			name: "no entries",
			res:  &Result{},
			want: ChangeUnknown,
		},
		{
			name: "all new",
			res: &Result{Files: []File{
				{Path: "/a", Change: ChangeNew},
				{Path: "/b", Change: ChangeNew},
			}},
			want: ChangeNew,
		},
		{
			name: "new among same",
			res: &Result{Files: []File{
				{Path: "/a", Change: ChangeNew},
				{Path: "/b", Change: ChangeSame},
			}},
			want: ChangeDifferent,
		},
		{
			name: "any different",
			res: &Result{Files: []File{
				{Path: "/a", Change: ChangeSame},
				{Path: "/b", Change: ChangeDifferent},
			}},
			want: ChangeDifferent,
		},
		{
			name: "all same",
			res: &Result{Files: []File{
				{Path: "/a", Change: ChangeSame},
				{Path: "/b", Change: ChangeSame},
			}},
			want: ChangeSame,
		},
		{
			name: "all unknown",
			res: &Result{Files: []File{
				{Path: "/a"},
				{Path: "/b"},
			}},
			want: ChangeSame,
		},
		{
			name: "registry values counted",
			res: &Result{Registry: []RegistryKey{
				{Path: "HKEY_CURRENT_USER/Key1", Change: ChangeSame, Values: map[string]RegistryValue{
					"Value1": {Change: ChangeDifferent},
				}},
			}},
			want: ChangeDifferent,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()
			if got := c.res.OverallChange(); got != c.want {
				t.Fatalf("OverallChange() = %v, want %v", got, c.want)
			}
		})
	}
}

func TestSumBytes(t *testing.T) {
	t.Parallel()

	res := &Result{Files: []File{
		{Path: "/file1", Size: 102_400, Hash: "1"},
		{Path: "/file2", Size: 51_200, Hash: "2"},
	}}

	if got := res.SumBytes(nil); got != 153_600 {
		t.Fatalf("SumBytes(nil) = %d, want 153600", got)
	}

	info := NewBackupInfo()
	info.AddFailedFile("/file2")
	if got := res.SumBytes(info); got != 102_400 {
		t.Fatalf("SumBytes with failure = %d, want 102400", got)
	}
}

func TestBackupInfoNilSafe(t *testing.T) {
	t.Parallel()

	var info *BackupInfo
	if info.FileFailed("/f") || info.RegistryFailed("HKEY_CURRENT_USER/Key1") {
		t.Fatal("nil BackupInfo should report no failures")
	}
	if !info.Empty() {
		t.Fatal("nil BackupInfo should be empty")
	}

	info = NewBackupInfo()
	if !info.Empty() {
		t.Fatal("fresh BackupInfo should be empty")
	}
	info.AddFailedRegistry("HKEY_CURRENT_USER/Key1")
	if info.Empty() || !info.RegistryFailed("HKEY_CURRENT_USER/Key1") {
		t.Fatal("recorded registry failure was lost")
	}
}

func TestSortedAccessors(t *testing.T) {
	t.Parallel()

	res := &Result{
		Files: []File{
			{Path: "/b"},
			{Path: "/a"},
		},
		Registry: []RegistryKey{
			{Path: "HKEY_CURRENT_USER/Key2"},
			{Path: "HKEY_CURRENT_USER/Key1"},
		},
	}

	files := res.SortedFiles()
	if files[0].Path != "/a" || files[1].Path != "/b" {
		t.Fatalf("SortedFiles returned %v", files)
	}
	if res.Files[0].Path != "/b" {
		t.Fatal("SortedFiles mutated the receiver")
	}

	keys := res.SortedRegistry()
	if keys[0].Path != "HKEY_CURRENT_USER/Key1" {
		t.Fatalf("SortedRegistry returned %v", keys)
	}

	k := RegistryKey{Values: map[string]RegistryValue{"b": {}, "a": {}}}
	names := k.SortedValueNames()
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Fatalf("SortedValueNames returned %v", names)
	}
}

func TestChangeMarshalAndSymbols(t *testing.T) {
	t.Parallel()

	cases := []struct {
		change Change
		str    string
		symbol string
	}{
		{ChangeUnknown, "Unknown", "?"},
		{ChangeNew, "New", "+"},
		{ChangeDifferent, "Different", "Δ"},
		{ChangeSame, "Same", "="},
	}

	for _, c := range cases {
		if got := c.change.String(); got != c.str {
			t.Errorf("String() = %q, want %q", got, c.str)
		}
		if got := c.change.Symbol(); got != c.symbol {
			t.Errorf("Symbol() = %q, want %q", got, c.symbol)
		}
		data, err := c.change.MarshalJSON()
		if err != nil {
			t.Fatalf("MarshalJSON returned error: %v", err)
		}
		if want := `"` + c.str + `"`; string(data) != want {
			t.Errorf("MarshalJSON = %s, want %s", data, want)
		}
	}
}
