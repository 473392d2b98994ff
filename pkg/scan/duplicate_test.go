package scan

import (
	"reflect"
	"testing"
)

func sharedFile() File {
	return File{Path: "/file1", Size: 100, Hash: "1"}
}

func TestDuplicateIndexUniqueEntries(t *testing.T) {
	t.Parallel()

	index := NewDuplicateIndex()
	index.AddGame(&Result{Game: "foo", Files: []File{sharedFile()}}, true)

	if got := index.IsFileDuplicated(sharedFile()); got != DuplicationUnique {
		t.Fatalf("single owner classified as %v", got)
	}
	if got := index.IsGameDuplicated("foo"); got != DuplicationUnique {
		t.Fatalf("game with unique entries classified as %v", got)
	}
	if got := index.IsGameDuplicated("unregistered"); got != DuplicationUnique {
		t.Fatalf("unregistered game classified as %v", got)
	}
}

func TestDuplicateIndexSharedEntries(t *testing.T) {
	t.Parallel()

	index := NewDuplicateIndex()
	index.AddGame(&Result{Game: "foo", Files: []File{sharedFile()}}, true)
	index.AddGame(&Result{Game: "bar", Files: []File{sharedFile()}}, true)

	if got := index.IsFileDuplicated(sharedFile()); got != DuplicationDuplicate {
		t.Fatalf("shared file classified as %v", got)
	}
	if got := index.FileOwners(sharedFile()); !reflect.DeepEqual(got, []string{"bar", "foo"}) {
		t.Fatalf("FileOwners = %v, want sorted [bar foo]", got)
	}
	if got := index.IsGameDuplicated("foo"); got != DuplicationDuplicate {
		t.Fatalf("game with shared file classified as %v", got)
	}
}

func TestDuplicateIndexHashDistinguishes(t *testing.T) {
	t.Parallel()

	index := NewDuplicateIndex()
	index.AddGame(&Result{Game: "foo", Files: []File{{Path: "/file1", Hash: "1"}}}, true)
	index.AddGame(&Result{Game: "bar", Files: []File{{Path: "/file1", Hash: "2"}}}, true)

	// Same path but different contents is not a duplicate.
	if got := index.IsFileDuplicated(File{Path: "/file1", Hash: "1"}); got != DuplicationUnique {
		t.Fatalf("same path with different hash classified as %v", got)
	}
}

func TestDuplicateIndexResolvedByIgnore(t *testing.T) {
	t.Parallel()

	ignored := sharedFile()
	ignored.Ignored = true

	index := NewDuplicateIndex()
	index.AddGame(&Result{Game: "foo", Files: []File{sharedFile()}}, true)
	index.AddGame(&Result{Game: "bar", Files: []File{ignored}}, true)

	if got := index.IsFileDuplicated(sharedFile()); got != DuplicationResolved {
		t.Fatalf("ignored co-owner should resolve the duplicate, got %v", got)
	}
	if got := index.IsGameDuplicated("foo"); got != DuplicationResolved {
		t.Fatalf("game with only resolved duplicates classified as %v", got)
	}
	// Resolved owners still show up in reverse lookups.
	if got := index.FileOwners(sharedFile()); !reflect.DeepEqual(got, []string{"bar", "foo"}) {
		t.Fatalf("FileOwners = %v, want [bar foo]", got)
	}
}

func TestDuplicateIndexResolvedByDisabledGame(t *testing.T) {
	t.Parallel()

	index := NewDuplicateIndex()
	index.AddGame(&Result{Game: "foo", Files: []File{sharedFile()}}, true)
	index.AddGame(&Result{Game: "bar", Files: []File{sharedFile()}}, false)

	if got := index.IsFileDuplicated(sharedFile()); got != DuplicationResolved {
		t.Fatalf("disabled co-owner should resolve the duplicate, got %v", got)
	}
}

func TestDuplicateIndexRegistry(t *testing.T) {
	t.Parallel()

	key := RegistryKey{
		Path:   "HKEY_CURRENT_USER/Key1",
		Values: map[string]RegistryValue{"Value1": {}},
	}

	index := NewDuplicateIndex()
	index.AddGame(&Result{Game: "foo", Registry: []RegistryKey{key}}, true)
	index.AddGame(&Result{Game: "bar", Registry: []RegistryKey{key}}, true)

	if got := index.IsRegistryDuplicated(key.Path); got != DuplicationDuplicate {
		t.Fatalf("shared registry key classified as %v", got)
	}
	if got := index.IsRegistryValueDuplicated(key.Path, "Value1"); got != DuplicationDuplicate {
		t.Fatalf("shared registry value classified as %v", got)
	}
	if got := index.RegistryOwners(key.Path); !reflect.DeepEqual(got, []string{"bar", "foo"}) {
		t.Fatalf("RegistryOwners = %v, want [bar foo]", got)
	}
	if got := index.RegistryValueOwners(key.Path, "Value1"); !reflect.DeepEqual(got, []string{"bar", "foo"}) {
		t.Fatalf("RegistryValueOwners = %v, want [bar foo]", got)
	}
}

func TestGameDuplicationWorstStatusWins(t *testing.T) {
	t.Parallel()

	unique := File{Path: "/only-foo", Hash: "9"}
	ignored := sharedFile()
	ignored.Ignored = true

	index := NewDuplicateIndex()
	index.AddGame(&Result{Game: "foo", Files: []File{unique, sharedFile()}}, true)
	index.AddGame(&Result{Game: "bar", Files: []File{sharedFile()}}, true)
	index.AddGame(&Result{Game: "baz", Files: []File{ignored}}, true)

	if got := index.IsGameDuplicated("foo"); got != DuplicationDuplicate {
		t.Fatalf("worst status should win, got %v", got)
	}
}

func TestDuplicationResolvedPredicate(t *testing.T) {
	t.Parallel()

	if !DuplicationUnique.Resolved() || !DuplicationResolved.Resolved() {
		t.Fatal("unique and resolved statuses need no warning")
	}
	if DuplicationDuplicate.Resolved() {
		t.Fatal("active duplicates must warn")
	}
}
