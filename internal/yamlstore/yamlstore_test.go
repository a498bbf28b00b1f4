package yamlstore

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/emberdeck/cardpress/core/cards"
)

func intp(n int) *int { return &n }

func testFields() cards.Fields {
	return cards.EncodeTrait(&cards.Trait{
		ID:          "T001",
		Name:        "Swift",
		Description: "This creature acts twice.",
		Type:        cards.TraitCombat,
		Value:       intp(2),
		DevStage:    cards.StageAlpha0,
	})
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := New(t.TempDir())
	want := testFields()
	if err := s.Save(cards.KindTrait, "T001", want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := s.Load(cards.KindTrait, "T001")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip changed fields:\n got %#v\nwant %#v", got, want)
	}
}

func TestListIDs(t *testing.T) {
	s := New(t.TempDir())
	if ids, err := s.ListIDs(cards.KindTrait); err != nil || ids != nil {
		t.Fatalf("ListIDs on empty store = %v, %v", ids, err)
	}
	for _, id := range []string{"T002", "T001"} {
		f := testFields()
		f["metadata"].(map[string]any)["id"] = id
		if err := s.Save(cards.KindTrait, id, f); err != nil {
			t.Fatalf("Save(%s): %v", id, err)
		}
	}
	ids, err := s.ListIDs(cards.KindTrait)
	if err != nil {
		t.Fatalf("ListIDs: %v", err)
	}
	if !reflect.DeepEqual(ids, []string{"T001", "T002"}) {
		t.Errorf("ListIDs = %v, want sorted [T001 T002]", ids)
	}
}

func TestLoadRejectsWrongDocKey(t *testing.T) {
	root := t.TempDir()
	s := New(root)
	dir := filepath.Join(root, "traits")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "T001.yaml"), []byte("creature:\n  data: {}\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Load(cards.KindTrait, "T001"); err == nil {
		t.Error("Load accepted a document without the trait key")
	}
}

func TestManifestVerify(t *testing.T) {
	root := t.TempDir()
	s := New(root)
	if err := s.Save(cards.KindTrait, "T001", testFields()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := s.WriteManifest(); err != nil {
		t.Fatalf("WriteManifest: %v", err)
	}
	problems, err := s.VerifyManifest()
	if err != nil {
		t.Fatalf("VerifyManifest: %v", err)
	}
	if len(problems) != 0 {
		t.Fatalf("fresh manifest reports problems: %v", problems)
	}

	// Modify a tracked file, add an untracked one, remove nothing.
	path := filepath.Join(root, "traits", "T001.yaml")
	if err := os.WriteFile(path, []byte("trait:\n  data: {}\n  metadata: {id: T001}\n"), 0644); err != nil {
		t.Fatal(err)
	}
	f := testFields()
	f["metadata"].(map[string]any)["id"] = "T002"
	if err := s.Save(cards.KindTrait, "T002", f); err != nil {
		t.Fatal(err)
	}
	problems, err = s.VerifyManifest()
	if err != nil {
		t.Fatalf("VerifyManifest: %v", err)
	}
	want := []string{"traits/T001.yaml: modified", "traits/T002.yaml: untracked"}
	if !reflect.DeepEqual(problems, want) {
		t.Errorf("problems = %v, want %v", problems, want)
	}
}
