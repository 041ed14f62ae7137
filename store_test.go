package alpha

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDirStore_RoundTrip(t *testing.T) {
	store, err := NewDirStore(filepath.Join(t.TempDir(), "data"))
	if err != nil {
		t.Fatalf("NewDirStore() failed: %v", err)
	}

	want := []*Entry{{Name: "Foo", Category: CategoryStrong, State: FetchResolved, Price: 12.5}}
	if err := store.Save(KeyStocks, want); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	var got []*Entry
	if err := store.Load(KeyStocks, &got); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Foo" || got[0].Category != CategoryStrong || got[0].Price != 12.5 {
		t.Errorf("round trip = %+v", got)
	}
}

func TestDirStore_MissingKeyKeepsDefault(t *testing.T) {
	store, err := NewDirStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	cash := DefaultStartingCash
	if err := store.Load(KeyCash, &cash); err != nil {
		t.Fatalf("Load() of a missing key failed: %v", err)
	}
	if !cash.Equal(DefaultStartingCash) {
		t.Errorf("default overwritten: %s", cash)
	}
}

func TestDirStore_CorruptValueKeepsDefault(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDirStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, KeyStocks+".json"), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	entries := []*Entry{{Name: "default"}}
	if err := store.Load(KeyStocks, &entries); err != nil {
		t.Fatalf("Load() of a corrupt value failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Name != "default" {
		t.Errorf("default not preserved: %+v", entries)
	}
}

func TestDirStore_SaveOverwrites(t *testing.T) {
	store, err := NewDirStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Save(KeyTopics, []*Topic{{Keyword: "a"}, {Keyword: "b"}}); err != nil {
		t.Fatal(err)
	}
	if err := store.Save(KeyTopics, []*Topic{{Keyword: "c"}}); err != nil {
		t.Fatal(err)
	}
	var got []*Topic
	if err := store.Load(KeyTopics, &got); err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Keyword != "c" {
		t.Errorf("save did not fully overwrite: %+v", got)
	}
}
