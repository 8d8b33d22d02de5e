package training

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const delta = 1e-9

func TestRunningMetrics(t *testing.T) {
	w := NewRunning(15000, 1, 75)

	assert.Equal(t, "Running", w.TrainingType())
	assert.InDelta(t, 9.75, w.Distance(), delta)
	assert.InDelta(t, 9.75, w.MeanSpeed(), delta)
	assert.InDelta(t, (18*9.75+1.79)*75/1000*60, w.SpentCalories(), delta)
	assert.InDelta(t, 797.805, w.SpentCalories(), 1e-6)
}

func TestSportsWalkingMetrics(t *testing.T) {
	w := NewSportsWalking(9000, 1, 75, 180)

	assert.Equal(t, "SportsWalking", w.TrainingType())
	assert.InDelta(t, 5.85, w.Distance(), delta)
	assert.InDelta(t, 5.85, w.MeanSpeed(), delta)
	expected := (0.035*75 + (5.85*5.85/180)*0.029*75) * 1 * 60
	assert.InDelta(t, expected, w.SpentCalories(), 1e-6)
	assert.InDelta(t, 182.311, w.SpentCalories(), 5e-4)
}

func TestSwimmingMetrics(t *testing.T) {
	w := NewSwimming(720, 1, 80, 25, 40)

	assert.Equal(t, "Swimming", w.TrainingType())
	assert.InDelta(t, 0.468, w.Distance(), delta)
	assert.InDelta(t, 1.0, w.MeanSpeed(), delta, "speed comes from the pool, not the strokes")
	assert.InDelta(t, 336.0, w.SpentCalories(), delta)
}

func TestSwimmingSpeedScalesWithDuration(t *testing.T) {
	w := NewSwimming(720, 2, 80, 25, 40)

	assert.InDelta(t, 0.5, w.MeanSpeed(), delta)
	assert.InDelta(t, (0.5+1.1)*2*80*2, w.SpentCalories(), delta)
}

func TestMetricsAreIdempotent(t *testing.T) {
	workouts := []Workout{
		NewRunning(15000, 1, 75),
		NewSportsWalking(9000, 1.5, 75, 180),
		NewSwimming(720, 1, 80, 25, 40),
	}
	for _, w := range workouts {
		t.Run(w.TrainingType(), func(t *testing.T) {
			d, s, c := w.Distance(), w.MeanSpeed(), w.SpentCalories()
			for i := 0; i < 3; i++ {
				require.Equal(t, d, w.Distance())
				require.Equal(t, s, w.MeanSpeed())
				require.Equal(t, c, w.SpentCalories())
			}
		})
	}
}

func TestReadPackage(t *testing.T) {
	cases := []struct {
		code     string
		data     []float64
		wantType string
	}{
		{code: "SWM", data: []float64{720, 1, 80, 25, 40}, wantType: "Swimming"},
		{code: "RUN", data: []float64{15000, 1, 75}, wantType: "Running"},
		{code: "WLK", data: []float64{9000, 1, 75, 180}, wantType: "SportsWalking"},
	}
	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			w, err := ReadPackage(tc.code, tc.data)
			require.NoError(t, err)
			require.Equal(t, tc.wantType, w.TrainingType())
			require.Equal(t, tc.data[1], w.Duration())
		})
	}
}

func TestReadPackageMatchesConstructors(t *testing.T) {
	w, err := ReadPackage("WLK", []float64{9000, 1, 75, 180})
	require.NoError(t, err)
	require.Equal(t, NewSportsWalking(9000, 1, 75, 180), w)
}

func TestReadPackageRejectsUnknownCode(t *testing.T) {
	for _, code := range []string{"XYZ", "", "run", "SWIM"} {
		w, err := ReadPackage(code, []float64{1, 2, 3})
		require.ErrorIs(t, err, ErrUnsupportedWorkout)
		require.Nil(t, w)
	}
}

func TestReadPackageRejectsWrongArity(t *testing.T) {
	for _, kind := range Kinds() {
		arity, ok := kind.Arity()
		require.True(t, ok)

		_, err := ReadPackage(string(kind), make([]float64, arity-1))
		require.ErrorIs(t, err, ErrArity)

		_, err = ReadPackage(string(kind), make([]float64, arity+1))
		require.ErrorIs(t, err, ErrArity)
	}
}

func TestUnknownKindHasNoArity(t *testing.T) {
	_, ok := Kind("XYZ").Arity()
	require.False(t, ok)
}
