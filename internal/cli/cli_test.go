package cli

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-eeg/config"
	"github.com/cwbudde/algo-eeg/eeg"
	"github.com/cwbudde/algo-eeg/eeg/classifier"
	"github.com/cwbudde/algo-eeg/internal/testutil"
)

type runResult struct {
	code   int
	stdout string
	stderr string
}

func run(t *testing.T, stdin string, args ...string) runResult {
	t.Helper()
	t.Chdir(t.TempDir())

	var out, errOut bytes.Buffer
	args = append([]string{"--env-file", filepath.Join(t.TempDir(), "none.env")}, args...)
	code := Execute(context.Background(), args, strings.NewReader(stdin), &out, &errOut)

	return runResult{code: code, stdout: out.String(), stderr: errOut.String()}
}

func decodeLines(t *testing.T, s string) []record {
	t.Helper()
	var out []record
	sc := bufio.NewScanner(strings.NewReader(s))
	sc.Buffer(nil, 1<<20)
	for sc.Scan() {
		var r record
		require.NoError(t, json.Unmarshal(sc.Bytes(), &r), sc.Text())
		out = append(out, r)
	}
	return out
}

func waveformJSON(t *testing.T, freq float64, n, rate int) string {
	t.Helper()
	b, err := json.Marshal(classifier.WaveformRequest(testutil.DeterministicSine(freq, float64(rate), 1, n), rate))
	require.NoError(t, err)
	return string(b)
}

func TestClassify_Frequency(t *testing.T) {
	res := run(t, "", "classify", "--frequency", "10.5")
	require.Equal(t, ExitOK, res.code, res.stderr)

	recs := decodeLines(t, res.stdout)
	require.Len(t, recs, 1)
	assert.Equal(t, "alpha", string(recs[0].Band))
	assert.Equal(t, "Calm/Relaxed", recs[0].Label)
	assert.Equal(t, "#4CAF50", recs[0].Color)
	require.NotNil(t, recs[0].DominantFrequencyHz)
	assert.Equal(t, 10.5, *recs[0].DominantFrequencyHz)
	assert.Nil(t, recs[0].BandPowers)
}

func TestClassify_Scenarios(t *testing.T) {
	tests := map[string]string{"2": "delta", "13": "beta", "150": "gamma", "12.5": "gamma", "-3": "delta"}
	for freq, want := range tests {
		res := run(t, "", "classify", "--frequency="+freq, "-o", "yaml")
		require.Equal(t, ExitOK, res.code, res.stderr)
		assert.Contains(t, res.stdout, "band: "+want, freq)
	}
}

func TestClassify_WaveformFromStdin(t *testing.T) {
	res := run(t, waveformJSON(t, 10, 512, 256), "classify", "--input", "-")
	require.Equal(t, ExitOK, res.code, res.stderr)

	recs := decodeLines(t, res.stdout)
	require.Len(t, recs, 1)
	assert.Equal(t, "alpha", string(recs[0].Band))
	assert.InDelta(t, 10, *recs[0].DominantFrequencyHz, 0.5)
	assert.Len(t, recs[0].BandPowers, 5)
}

func TestClassify_WaveformFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "req.json")
	require.NoError(t, os.WriteFile(path, []byte(waveformJSON(t, 20, 512, 256)), 0o600))

	res := run(t, "", "classify", "-i", path, "-o", "table")
	require.Equal(t, ExitOK, res.code, res.stderr)
	assert.Contains(t, res.stdout, "BETA %")
	assert.Contains(t, res.stdout, "Alert/Active")
}

func TestClassify_ErrorExitCodes(t *testing.T) {
	tests := []struct {
		name  string
		stdin string
		args  []string
		want  int
	}{
		{"no input", "", []string{"classify"}, ExitInvalidInput},
		{"both inputs", "", []string{"classify", "--frequency", "3", "--input", "-"}, ExitInvalidInput},
		{"malformed json", "{", []string{"classify", "--input", "-"}, ExitInvalidInput},
		{"empty request", "{}", []string{"classify", "--input", "-"}, ExitInvalidInput},
		{"short waveform", `{"waveform":[1,2,3],"sampling_rate_hz":256}`, []string{"classify", "--input", "-"}, ExitInsufficientSamples},
		{"low rate", waveformJSON(t, 10, 512, 80), []string{"classify", "--input", "-"}, ExitInvalidSamplingRate},
		{"missing file", "", []string{"classify", "--input", "/nonexistent/req.json"}, ExitFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := run(t, tt.stdin, tt.args...)
			assert.Equal(t, tt.want, res.code, res.stderr)
			assert.Contains(t, res.stderr, "error:")
		})
	}
}

func TestBatch(t *testing.T) {
	lines := strings.Join([]string{
		`{"frequency_hz": 2}`,
		``,
		waveformJSON(t, 10, 512, 256),
		`{"waveform": [1, 2, 3]}`,
		`{"frequency_hz": 150}`,
	}, "\n")

	res := run(t, lines, "batch", "--workers", "2")
	require.Equal(t, ExitOK, res.code, res.stderr)

	recs := decodeLines(t, res.stdout)
	require.Len(t, recs, 4)
	for i, r := range recs {
		require.NotNil(t, r.Index)
		assert.Equal(t, i, *r.Index)
	}
	assert.Equal(t, "delta", string(recs[0].Band))
	assert.Equal(t, "alpha", string(recs[1].Band))
	assert.Equal(t, "alpha", string(recs[1].StrongestBand))
	assert.Empty(t, recs[0].StrongestBand)
	assert.Equal(t, eeg.KindInsufficientSamples, recs[2].ErrorKind)
	assert.NotEmpty(t, recs[2].Error)
	assert.Equal(t, "gamma", string(recs[3].Band))
}

func TestBatch_MalformedLine(t *testing.T) {
	res := run(t, "{\"frequency_hz\": 2}\nnot json\n", "batch")
	assert.Equal(t, ExitInvalidInput, res.code)
	assert.Contains(t, res.stderr, "line 2")
}

func TestBatch_UnknownField(t *testing.T) {
	res := run(t, "{\"frequency_hz\": 2}\n{\"waveforms\": [1, 2, 3]}\n", "batch")
	assert.Equal(t, ExitInvalidInput, res.code)
	assert.Contains(t, res.stderr, "line 2")
	assert.Contains(t, res.stderr, "waveforms")
}

func TestBatch_TableShowsStrongestBand(t *testing.T) {
	res := run(t, waveformJSON(t, 10, 512, 256)+"\n", "batch", "-o", "table")
	require.Equal(t, ExitOK, res.code, res.stderr)

	lines := strings.Split(strings.TrimSpace(res.stdout), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "STRONGEST")
	fields := strings.Fields(lines[1])
	require.NotEmpty(t, fields)
	assert.Equal(t, "alpha", fields[len(fields)-1])
}

func TestStream(t *testing.T) {
	var sb strings.Builder
	for _, v := range testutil.DeterministicSine(6, 256, 1, 3*256) {
		fmt.Fprintf(&sb, "%.6f\n", v)
	}

	res := run(t, sb.String(), "stream")
	require.Equal(t, ExitOK, res.code, res.stderr)

	recs := decodeLines(t, res.stdout)
	require.Len(t, recs, 3)
	for i, r := range recs {
		assert.Equal(t, uint64(i+1), r.Seq)
		assert.Equal(t, "theta", string(r.Band))
	}
}

func TestStream_BadSample(t *testing.T) {
	res := run(t, "1 2 three", "stream")
	assert.Equal(t, ExitInvalidInput, res.code)
}

func TestBands(t *testing.T) {
	res := run(t, "", "bands", "-o", "table")
	require.Equal(t, ExitOK, res.code, res.stderr)
	assert.Contains(t, res.stdout, "NAME")
	assert.Contains(t, res.stdout, "[13, 30)")
	assert.Contains(t, res.stdout, "Highly Engaged")

	res = run(t, "", "bands")
	require.Equal(t, ExitOK, res.code, res.stderr)
	var bands []config.BandConfig
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &bands))
	assert.Len(t, bands, 5)
}

func TestBands_State(t *testing.T) {
	res := run(t, "", "bands", "--state", "theta")
	require.Equal(t, ExitOK, res.code, res.stderr)

	var bands []config.BandConfig
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &bands))
	require.Len(t, bands, 1)
	assert.Equal(t, "theta", bands[0].Name)
	assert.Equal(t, 4.0, bands[0].LowerHz)
	assert.Equal(t, 8.0, bands[0].UpperHz)

	res = run(t, "", "bands", "--state", "sleepy")
	assert.Equal(t, ExitInvalidInput, res.code)
	assert.Contains(t, res.stderr, "sleepy")
}

func TestConfig_Precedence(t *testing.T) {
	res := run(t, "", "config")
	require.Equal(t, ExitOK, res.code, res.stderr)
	assert.Contains(t, res.stdout, "sampling_rate_hz: 256")

	t.Setenv("BRAINSTATE_SAMPLING_RATE_HZ", "512")
	res = run(t, "", "config")
	require.Equal(t, ExitOK, res.code, res.stderr)
	assert.Contains(t, res.stdout, "sampling_rate_hz: 512")

	res = run(t, "", "config", "--sampling-rate", "1000")
	require.Equal(t, ExitOK, res.code, res.stderr)
	assert.Contains(t, res.stdout, "sampling_rate_hz: 1000")
}

func TestConfig_FileAndInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bs.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output: table\nworkers: 2\n"), 0o600))

	res := run(t, "", "--config", path, "config")
	require.Equal(t, ExitOK, res.code, res.stderr)
	assert.Contains(t, res.stdout, "output: table")
	assert.Contains(t, res.stdout, "workers: 2")

	res = run(t, "", "config", "--sampling-rate", "80")
	assert.Equal(t, ExitInvalidConfig, res.code)
}

func TestMetricsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "brainstate.prom")

	res := run(t, "", "--metrics-file", path, "classify", "--frequency", "6")
	require.Equal(t, ExitOK, res.code, res.stderr)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `brainstate_classifications_total{band="theta",path="frequency"} 1`)
}

func TestDebugLogging(t *testing.T) {
	res := run(t, "", "--log-level", "debug", "--log-format", "console", "classify", "--frequency", "6")
	require.Equal(t, ExitOK, res.code, res.stderr)
	assert.Contains(t, res.stderr, "classified frequency")
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, ExitOK, ExitCode(nil))
	assert.Equal(t, ExitFailure, ExitCode(errors.New("boom")))
	assert.Equal(t, ExitInvalidInput, ExitCode(fmt.Errorf("x: %w", eeg.ErrInvalidInput)))
	assert.Equal(t, ExitInvalidSamplingRate, ExitCode(eeg.ErrInvalidSamplingRate))
	assert.Equal(t, ExitInsufficientSamples, ExitCode(eeg.ErrInsufficientSamples))
	assert.Equal(t, ExitInvalidConfig, ExitCode(config.ErrInvalidConfig))
	assert.Equal(t, ExitInvalidConfig, ExitCode(fmt.Errorf("%w: %w", classifier.ErrInvalidConfig, eeg.ErrInvalidSamplingRate)))
}

func TestNewRootCommand_Help(t *testing.T) {
	var out bytes.Buffer
	cmd := NewRootCommand(strings.NewReader(""), &out, &out)
	cmd.SetArgs([]string{"--help"})
	require.NoError(t, cmd.Execute())

	for _, sub := range []string{"classify", "batch", "stream", "bands", "config"} {
		assert.Contains(t, out.String(), sub)
	}
}
