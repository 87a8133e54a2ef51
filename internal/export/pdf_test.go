package export

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/pmoquiz/internal/quiz"
	"github.com/abhisek/pmoquiz/internal/recommend"
	"github.com/abhisek/pmoquiz/internal/report"
)

var mediaBox = regexp.MustCompile(`/MediaBox \[0 0 ([0-9.]+) ([0-9.]+)\]`)

func sampleReport(withFeedback bool) report.Report {
	max := quiz.MaxScores(quiz.Bank())
	scores := quiz.Scores{}
	for i, c := range quiz.Categories() {
		scores[c] = 2 + i
	}
	if !withFeedback {
		return report.Build(scores, max, nil)
	}
	recs := recommend.Recommendations{}
	for _, c := range quiz.Categories() {
		recs[c] = "**Insight:** Processes exist but are applied unevenly across teams.\n" +
			"**Follow-up Questions:** Who owns the standard? What happens when a project deviates?\n" +
			"**Next Step:** Nominate a methodology owner and publish a one-page playbook."
	}
	recs[quiz.RiskManagement] = "We couldn't split this one, so here it is as “plain” text."
	return report.Build(scores, max, recs)
}

func pageSize(t *testing.T, data []byte) (float64, float64) {
	t.Helper()
	m := mediaBox.FindSubmatch(data)
	require.NotNil(t, m, "no MediaBox in output")
	w, err := strconv.ParseFloat(string(m[1]), 64)
	require.NoError(t, err)
	h, err := strconv.ParseFloat(string(m[2]), 64)
	require.NoError(t, err)
	return w, h
}

func TestWritePDF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePDF(&buf, sampleReport(true)))

	data := buf.Bytes()
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))

	w, h := pageSize(t, data)
	assert.InDelta(t, 595.28, w, 0.01, "page width is 210mm in points")
	assert.Greater(t, h, 0.0)
	assert.Equal(t, 1, strings.Count(string(data), "/Type /Page\n"), "single page")
}

func TestPageHeightFollowsContent(t *testing.T) {
	var short, long bytes.Buffer
	require.NoError(t, WritePDF(&short, sampleReport(false)))
	require.NoError(t, WritePDF(&long, sampleReport(true)))

	_, hShort := pageSize(t, short.Bytes())
	_, hLong := pageSize(t, long.Bytes())
	assert.Greater(t, hLong, hShort)
}

func TestSaveFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", DefaultFileName)
	require.NoError(t, SaveFile(path, sampleReport(true)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestSaveFileError(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	err := SaveFile(filepath.Join(blocker, "out.pdf"), sampleReport(false))
	assert.Error(t, err)
}

func TestPlain(t *testing.T) {
	assert.Equal(t, "a strong b", plain("a **strong** b"))
}
