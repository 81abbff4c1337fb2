package export

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/piwi3910/rectpack/internal/model"
)

func TestExportLabels_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.pdf")

	if err := ExportLabels(path, buildTestResult()); err != nil {
		t.Fatalf("ExportLabels returned error: %v", err)
	}
	assertNonTrivialFile(t, path)
}

func TestExportLabels_MultiplePages(t *testing.T) {
	// Identical labels at identical positions on different bins must not
	// collide in the image registry.
	result := model.PackResult{BinWidth: 10, BinHeight: 10}
	it := model.Item{ID: "same", Label: "Same", Width: 10, Height: 10, Quantity: 1}
	for i := 0; i < labelsPerPage+5; i++ {
		result.Bins = append(result.Bins, model.BinResult{
			Index: i, Width: 10, Height: 10,
			Placements: []model.Placement{{Item: it, Width: 10, Height: 10}},
		})
	}
	path := filepath.Join(t.TempDir(), "labels.pdf")

	if err := ExportLabels(path, result); err != nil {
		t.Fatalf("ExportLabels returned error: %v", err)
	}
	assertNonTrivialFile(t, path)
}

func TestExportLabels_NoPlacements(t *testing.T) {
	path := filepath.Join(t.TempDir(), "none.pdf")

	result := model.PackResult{Bins: []model.BinResult{{Width: 10, Height: 10}}}
	if err := ExportLabels(path, result); err == nil {
		t.Fatal("expected error for result with no placements, got nil")
	}
	if err := ExportLabels(path, model.PackResult{}); err == nil {
		t.Fatal("expected error for empty result, got nil")
	}
}

func TestCollectLabelInfos(t *testing.T) {
	labels := CollectLabelInfos(buildTestResult())

	if len(labels) != 3 {
		t.Fatalf("expected 3 labels, got %d", len(labels))
	}
	if labels[0].Label != "Side Panel" || labels[0].Bin != 1 || labels[0].Rotated {
		t.Errorf("unexpected first label %+v", labels[0])
	}
	if !labels[1].Rotated || labels[1].Width != 30 || labels[1].Height != 50 {
		t.Errorf("second label should carry the unrotated item size and the rotation flag: %+v", labels[1])
	}
	if labels[1].X != 50 {
		t.Errorf("expected x 50, got %d", labels[1].X)
	}
	if labels[2].Bin != 2 {
		t.Errorf("expected bin 2 for third label, got %d", labels[2].Bin)
	}
}

func TestLabelInfo_JSONKeys(t *testing.T) {
	data, err := json.Marshal(LabelInfo{ItemID: "a", Label: "A", Width: 1, Height: 2, Bin: 3, X: 4, Y: 5})
	if err != nil {
		t.Fatal(err)
	}
	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"id", "label", "width", "height", "bin", "x", "y", "rotated"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("missing key %q in %s", key, data)
		}
	}
	if fmt.Sprint(decoded["bin"]) != "3" {
		t.Errorf("expected bin 3, got %v", decoded["bin"])
	}
}
