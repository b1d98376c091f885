package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Breureka/exifrenamer/internal/testutil"
)

func execute(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := Execute(context.Background(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func TestCopiesIntoDateTree(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	srcFile := testutil.WriteFile(t, src, "DSC0001.JPG", testutil.JPEG("2009:06:15 14:30:00"))

	code, stdout, stderr := execute(t, src, dst)
	if code != 0 {
		t.Fatalf("expected exit 0, got %d (stderr %q)", code, stderr)
	}
	want := filepath.Join(dst, "2009", "06", "15", "2009-06-15_14.30.00.jpg")
	if !exists(want) {
		t.Fatalf("expected %s to exist", want)
	}
	if !strings.Contains(stdout, "COPY: "+srcFile+" --> "+want) {
		t.Fatalf("unexpected output %q", stdout)
	}
	if !exists(srcFile) {
		t.Fatalf("source must be left in place")
	}
}

func TestSentinelTimestampIsSkipped(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	testutil.WriteFile(t, src, "bad.jpg", testutil.JPEG("0000:00:00 00:00:00"))

	code, stdout, stderr := execute(t, src, dst)
	if code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if !strings.Contains(stderr, "0000:00:00") {
		t.Fatalf("expected the sentinel date in the error, got %q", stderr)
	}
	if strings.Contains(stdout, "COPY:") {
		t.Fatalf("nothing should be copied, got %q", stdout)
	}
	entries, _ := os.ReadDir(dst)
	if len(entries) != 0 {
		t.Fatalf("destination should be untouched, got %d entries", len(entries))
	}
}

func TestSameTimestampGetsSuffix(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	testutil.WriteFile(t, src, "a.jpg", testutil.JPEG("2009:06:15 14:30:00"))
	testutil.WriteFile(t, src, "b.jpg", testutil.JPEG("2009:06:15 14:30:00"))

	code, _, stderr := execute(t, "-q", src, dst)
	if code != 0 {
		t.Fatalf("expected exit 0, got %d (%s)", code, stderr)
	}
	dir := filepath.Join(dst, "2009", "06", "15")
	for _, name := range []string{"2009-06-15_14.30.00.jpg", "2009-06-15_14.30.00_1.jpg"} {
		if !exists(filepath.Join(dir, name)) {
			t.Fatalf("expected %s", name)
		}
	}
}

func TestDryRunWritesNothing(t *testing.T) {
	src := t.TempDir()
	dst := filepath.Join(t.TempDir(), "out")
	testutil.WriteFile(t, src, "a.jpg", testutil.JPEG("2009:06:15 14:30:00"))

	code, stdout, _ := execute(t, "--dry-run", src, dst)
	if code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if exists(dst) {
		t.Fatalf("dry run created %s", dst)
	}
	want := filepath.Join(dst, "2009", "06", "15", "2009-06-15_14.30.00.jpg")
	if !strings.Contains(stdout, want) {
		t.Fatalf("expected planned path in output, got %q", stdout)
	}
	if !strings.Contains(stdout, "DRY RUN: All actions simulated.") {
		t.Fatalf("expected dry run notice, got %q", stdout)
	}
}

func TestCustomTemplate(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	testutil.WriteFile(t, src, "nested/deeper/a.jpeg", testutil.JPEG("2009:06:15 14:30:00"))

	code, stdout, _ := execute(t, "-v", "-t", "%Y/%b/%d_%H%M%S", src, dst)
	if code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if !exists(filepath.Join(dst, "2009", "Jun", "15_143000.jpg")) {
		t.Fatalf("expected templated destination")
	}
	for _, want := range []string{"*TEMPLATE: %Y/%b/%d_%H%M%S", "*PROCESS:", "TIMESTAMP: 2009:06:15 14:30:00"} {
		if !strings.Contains(stdout, want) {
			t.Fatalf("expected %q in verbose output:\n%s", want, stdout)
		}
	}
}

func TestTemplateWithoutSeparatorIsRejected(t *testing.T) {
	src := t.TempDir()
	dst := filepath.Join(t.TempDir(), "out")
	testutil.WriteFile(t, src, "a.jpg", testutil.JPEG("2009:06:15 14:30:00"))

	code, _, stderr := execute(t, "-t", "%Y%m%d", src, dst)
	if code != 2 {
		t.Fatalf("expected exit 2, got %d", code)
	}
	if !strings.Contains(stderr, "path separator") {
		t.Fatalf("unexpected error %q", stderr)
	}
	if exists(dst) {
		t.Fatalf("destination must not be touched")
	}
}

func TestMissingSourceExitsTwo(t *testing.T) {
	code, _, stderr := execute(t, filepath.Join(t.TempDir(), "missing"), t.TempDir())
	if code != 2 {
		t.Fatalf("expected exit 2, got %d", code)
	}
	if !strings.Contains(stderr, "SOURCE directory does not exist") {
		t.Fatalf("unexpected error %q", stderr)
	}
}

func TestArgumentErrorsExitTwo(t *testing.T) {
	src := t.TempDir()
	cases := [][]string{
		{},
		{src},
		{"--no-such-flag", src, src},
		{"-q", "-v", src, src},
	}
	for _, args := range cases {
		if code, _, _ := execute(t, args...); code != 2 {
			t.Fatalf("args %v: expected exit 2, got %d", args, code)
		}
	}
}

func TestUnwritableDestinationExitsOne(t *testing.T) {
	src := t.TempDir()
	testutil.WriteFile(t, src, "a.jpg", testutil.JPEG("2009:06:15 14:30:00"))
	blocker := testutil.WriteFile(t, t.TempDir(), "file", []byte("x"))

	code, _, stderr := execute(t, src, blocker)
	if code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if !strings.Contains(stderr, "Unable to create directory") {
		t.Fatalf("unexpected error %q", stderr)
	}
}

func TestCorruptAndUntaggedFiles(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	testutil.WriteFile(t, src, "fake.jpg", []byte("not a jpeg at all"))
	testutil.WriteFile(t, src, "plain.jpg", testutil.PlainJPEG())
	testutil.WriteFile(t, src, "notes.txt", []byte("hello"))

	code, _, stderr := execute(t, src, dst)
	if code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if !strings.Contains(stderr, "ERROR: Corrupt File - "+filepath.Join(src, "fake.jpg")) {
		t.Fatalf("expected corrupt report, got %q", stderr)
	}
	if !strings.Contains(stderr, "ERROR: Timestamp [ missing ] - "+filepath.Join(src, "plain.jpg")) {
		t.Fatalf("expected missing timestamp report, got %q", stderr)
	}
	if strings.Contains(stderr, "notes.txt") {
		t.Fatalf("non-JPEG files are skipped silently, got %q", stderr)
	}
}

func TestOriginalMovesWithinSource(t *testing.T) {
	src := t.TempDir()
	loose := testutil.WriteFile(t, src, "DSC0001.JPG", testutil.JPEG("2009:06:15 14:30:00"))

	code, _, stderr := execute(t, "--original", "-q", src)
	if code != 0 {
		t.Fatalf("expected exit 0, got %d (%s)", code, stderr)
	}
	placed := filepath.Join(src, "2009", "06", "15", "2009-06-15_14.30.00.jpg")
	if !exists(placed) || exists(loose) {
		t.Fatalf("expected %s moved to %s", loose, placed)
	}

	// A second run leaves the organized file alone.
	code, _, _ = execute(t, "-o", "-q", src)
	if code != 0 || !exists(placed) {
		t.Fatalf("second in-place run changed the tree")
	}
	if exists(filepath.Join(src, "2009", "06", "15", "2009-06-15_14.30.00_1.jpg")) {
		t.Fatalf("second in-place run renamed an organized file")
	}
}
