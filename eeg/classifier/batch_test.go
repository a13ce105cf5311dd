package classifier

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-eeg/eeg"
	"github.com/cwbudde/algo-eeg/eeg/band"
	"github.com/cwbudde/algo-eeg/internal/testutil"
)

func TestClassifyBatch_OrderAndPerRequestErrors(t *testing.T) {
	c := newClassifier(t, WithWorkers(3))

	reqs := []Request{
		FrequencyRequest(2),
		WaveformRequest(testutil.DeterministicSine(10, 256, 1, 512), 256),
		WaveformRequest(make([]float64, 10), 256),
		FrequencyRequest(13),
		WaveformRequest(testutil.DeterministicSine(10, 80, 1, 512), 80),
		{},
		FrequencyRequest(150),
	}

	out, err := c.ClassifyBatch(context.Background(), reqs)
	require.NoError(t, err)
	require.Len(t, out, len(reqs))

	for i, o := range out {
		assert.Equal(t, i, o.Index)
	}

	assert.Equal(t, band.Delta, out[0].Result.Band)
	assert.Equal(t, band.Alpha, out[1].Result.Band)
	assert.ErrorIs(t, out[2].Err, eeg.ErrInsufficientSamples)
	assert.Equal(t, band.Beta, out[3].Result.Band)
	assert.ErrorIs(t, out[4].Err, eeg.ErrInvalidSamplingRate)
	assert.ErrorIs(t, out[5].Err, eeg.ErrInvalidInput)
	assert.Equal(t, band.Gamma, out[6].Result.Band)
}

func TestClassifyBatch_Empty(t *testing.T) {
	c := newClassifier(t)
	out, err := c.ClassifyBatch(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestClassifyBatch_Cancelled(t *testing.T) {
	c := newClassifier(t, WithWorkers(1))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	reqs := []Request{FrequencyRequest(1), FrequencyRequest(2), FrequencyRequest(3)}
	out, err := c.ClassifyBatch(ctx, reqs)
	require.ErrorIs(t, err, context.Canceled)
	require.Len(t, out, 3)
	for i, o := range out {
		assert.Equal(t, i, o.Index)
		assert.ErrorIs(t, o.Err, context.Canceled)
	}
}

func TestClassifyBatch_MatchesSequential(t *testing.T) {
	c := newClassifier(t, WithWorkers(4))

	var reqs []Request
	for i := range 20 {
		reqs = append(reqs, WaveformRequest(testutil.Add(
			testutil.DeterministicSine(float64(2+i*2), 256, 1, 512),
			testutil.DeterministicNoise(int64(i), 0.1, 512),
		), 256))
	}

	out, err := c.ClassifyBatch(context.Background(), reqs)
	require.NoError(t, err)

	for i, req := range reqs {
		want, err := c.Classify(req)
		require.NoError(t, err)
		require.NoError(t, out[i].Err)
		assert.Equal(t, want, out[i].Result, "request %d", i)
	}
}
