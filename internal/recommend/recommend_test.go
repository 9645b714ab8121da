package recommend

import (
	"bytes"
	"encoding/base64"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

const catalogCSV = `Pose,Step,Video
Child S Pose,Kneel and fold forward,https://video.example/child
Cat-Cow Pose,Alternate arching and rounding,https://video.example/catcow
Knee To Chest,Hug one knee at a time,https://video.example/knee
Downward Facing Dog Pose,Lift hips high,https://video.example/dog
Deep Breathing Exercises,Breathe slowly,https://video.example/breath
Bridge Pose,Lift the pelvis,https://video.example/bridge
Savasana,Lie still,https://video.example/savasana
`

func testCatalog(t *testing.T) Catalog {
	t.Helper()
	c, err := ReadCatalog(strings.NewReader(catalogCSV))
	if err != nil {
		t.Fatalf("ReadCatalog() error: %v", err)
	}
	return c
}

func quietEngine(c Catalog, opts ...EngineOption) *Engine {
	opts = append(opts, WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	return NewEngine(c, opts...)
}

func keywordsOf(results []Result) []string {
	var out []string
	for _, r := range results {
		out = append(out, r.Keyword)
	}
	return out
}

func TestReadCatalog(t *testing.T) {
	c := testCatalog(t)
	if len(c) != 7 {
		t.Fatalf("catalog has %d poses, want 7", len(c))
	}
	pose, ok := c["child_s_pose"]
	if !ok {
		t.Fatalf("child_s_pose missing: %v", c)
	}
	if pose.Steps != "Kneel and fold forward" || pose.Video != "https://video.example/child" {
		t.Errorf("pose = %+v", pose)
	}
	if _, ok := c["cat-cow_pose"]; !ok {
		t.Error("hyphenated names must be kept")
	}
}

func TestReadCatalogColumnOrderAndQuoting(t *testing.T) {
	data := "Video,Pose,Step\nhttps://v.example/1,Tree Pose,\"Stand, then balance\"\n"
	c, err := ReadCatalog(strings.NewReader(data))
	if err != nil {
		t.Fatalf("ReadCatalog() error: %v", err)
	}
	if got := c["tree_pose"]; got.Steps != "Stand, then balance" || got.Video != "https://v.example/1" {
		t.Errorf("pose = %+v", got)
	}
}

func TestReadCatalogMissingColumn(t *testing.T) {
	if _, err := ReadCatalog(strings.NewReader("Pose,Step\nTree,Stand\n")); err == nil {
		t.Error("expected error for missing Video column")
	}
	if _, err := ReadCatalog(strings.NewReader("")); err == nil {
		t.Error("expected error for empty catalog")
	}
}

func TestLoadCatalogFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "poses.csv")
	if err := os.WriteFile(path, []byte(catalogCSV), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("LoadCatalog() error: %v", err)
	}
	if len(c) != 7 {
		t.Errorf("catalog has %d poses", len(c))
	}
	if _, err := LoadCatalog(filepath.Join(t.TempDir(), "missing.csv")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestKeywords(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"I have back pain", []string{"back", "pain"}},
		{"Feeling STRESS, lots of it!", []string{"stress"}},
		{"my neck hurts since 2019", []string{"neck", "hurts"}},
		{"the and of", nil},
		{"", nil},
	}
	for _, tt := range tests {
		if got := Keywords(tt.input); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Keywords(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestClosestMatch(t *testing.T) {
	names := DefaultTable.Names()
	tests := []struct {
		word   string
		want   string
		wantOK bool
	}{
		{"strss", "stress", true},
		{"asthmaa", "asthma", true},
		{"insomia", "insomnia", true},
		{"banana", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := ClosestMatch(tt.word, names, closeMatchCutoff)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ClosestMatch(%q) = %q, %v; want %q, %v", tt.word, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestRecommendMultiWordCondition(t *testing.T) {
	e := quietEngine(testCatalog(t))

	results := e.Recommend("I have back pain")
	if len(results) != 1 || results[0].Keyword != "back_pain" {
		t.Fatalf("results = %v", keywordsOf(results))
	}
	var poses []string
	for _, r := range results[0].Recommendations {
		poses = append(poses, r.Pose)
	}
	if !reflect.DeepEqual(poses, []string{"knee_to_chest", "downward_facing_dog_pose"}) {
		t.Errorf("poses = %v", poses)
	}
	if results[0].Recommendations[0].Steps != "Hug one knee at a time" {
		t.Errorf("steps = %q", results[0].Recommendations[0].Steps)
	}
}

func TestRecommendLeadingSingleWordStopsSearch(t *testing.T) {
	e := quietEngine(testCatalog(t))

	results := e.Recommend("anxiety and insomnia")
	if got := keywordsOf(results); !reflect.DeepEqual(got, []string{"anxiety"}) {
		t.Errorf("keywords = %v, want [anxiety]", got)
	}
}

func TestRecommendSingleWordConditions(t *testing.T) {
	e := quietEngine(testCatalog(t))

	results := e.Recommend("terrible insomnia and asthma")
	if got := keywordsOf(results); !reflect.DeepEqual(got, []string{"insomnia", "asthma"}) {
		t.Errorf("keywords = %v, want [insomnia asthma]", got)
	}
}

func TestRecommendFuzzyFallback(t *testing.T) {
	e := quietEngine(testCatalog(t))

	results := e.Recommend("I have strss")
	if len(results) != 1 {
		t.Fatalf("results = %v", keywordsOf(results))
	}
	if results[0].Keyword != "strss" {
		t.Errorf("keyword = %q, want the typed token", results[0].Keyword)
	}
	if len(results[0].Recommendations) != 2 || results[0].Recommendations[0].Pose != "child_s_pose" {
		t.Errorf("recommendations = %+v", results[0].Recommendations)
	}
}

func TestRecommendNoMatch(t *testing.T) {
	e := quietEngine(testCatalog(t))
	if results := e.Recommend("hello there"); len(results) != 0 {
		t.Errorf("results = %v, want none", keywordsOf(results))
	}
}

func TestRecommendSkipsPosesMissingFromCatalog(t *testing.T) {
	e := quietEngine(testCatalog(t))

	// None of the arthritis poses are in the test catalog.
	results := e.Recommend("arthritis")
	if len(results) != 1 || results[0].Keyword != "arthritis" {
		t.Fatalf("results = %v", keywordsOf(results))
	}
	if len(results[0].Recommendations) != 0 {
		t.Errorf("recommendations = %+v, want none", results[0].Recommendations)
	}
}

func TestRecommendCustomTable(t *testing.T) {
	table := Table{{"sore_feet", []string{"savasana"}}}
	e := quietEngine(testCatalog(t), WithTable(table))

	results := e.Recommend("sore feet")
	if len(results) != 1 || results[0].Keyword != "sore_feet" {
		t.Fatalf("results = %v", keywordsOf(results))
	}
}

func TestFirstImage(t *testing.T) {
	dir := t.TempDir()
	poseDir := filepath.Join(dir, "savasana")
	if err := os.MkdirAll(poseDir, 0o755); err != nil {
		t.Fatal(err)
	}
	files := map[string][]byte{
		"b.png":     []byte("second"),
		"a.JPG":     []byte("first"),
		"notes.txt": []byte("ignored"),
	}
	for name, data := range files {
		if err := os.WriteFile(filepath.Join(poseDir, name), data, 0o644); err != nil {
			t.Fatal(err)
		}
	}

	img, err := FirstImage(dir, "savasana")
	if err != nil {
		t.Fatalf("FirstImage() error: %v", err)
	}
	if img == nil || img.MIMEType != "image/jpeg" {
		t.Fatalf("image = %+v", img)
	}
	data, _ := base64.StdEncoding.DecodeString(img.Data)
	if !bytes.Equal(data, []byte("first")) {
		t.Errorf("data = %q, want first file by name", data)
	}

	if img, err := FirstImage(dir, "missing_pose"); img != nil || err != nil {
		t.Errorf("missing pose = %+v, %v; want nil, nil", img, err)
	}
}

func TestRecommendAttachesImages(t *testing.T) {
	dir := t.TempDir()
	poseDir := filepath.Join(dir, "knee_to_chest")
	if err := os.MkdirAll(poseDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(poseDir, "1.png"), []byte("png"), 0o644); err != nil {
		t.Fatal(err)
	}

	e := quietEngine(testCatalog(t), WithImageDir(dir))
	recs := e.Recommend("back pain")[0].Recommendations

	if recs[0].Image == nil || recs[0].Image.MIMEType != "image/png" {
		t.Errorf("knee_to_chest image = %+v", recs[0].Image)
	}
	if recs[1].Image != nil {
		t.Errorf("downward_facing_dog_pose should have no image, got %+v", recs[1].Image)
	}
}
