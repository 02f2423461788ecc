package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsGrade(t *testing.T) {
	for _, g := range Grades {
		assert.True(t, IsGrade(string(g)), "grade %q", g)
	}

	invalid := []string{"", "v12", "V1_V2", "vb-v0", "v11", " v1_v2"}
	for _, v := range invalid {
		assert.False(t, IsGrade(v), "value %q", v)
	}
}

func TestGrade_Label(t *testing.T) {
	tests := []struct {
		grade Grade
		want  string
	}{
		{GradeVBV0, "VB - V0"},
		{GradeV1V2, "V1 - V2"},
		{GradeV3V4, "V3 - V4"},
		{GradeV5V6, "V5 - V6"},
		{GradeV7V8, "V7 - V8"},
		{GradeV9V10, "V9 - V10"},
		{GradeV11Up, "V11+"},
	}
	for _, tt := range tests {
		t.Run(string(tt.grade), func(t *testing.T) {
			label, err := tt.grade.Label()
			require.NoError(t, err)
			assert.Equal(t, tt.want, label)
		})
	}

	t.Run("未知のグレードはエラー", func(t *testing.T) {
		_, err := Grade("v12").Label()
		assert.ErrorIs(t, err, ErrInvalidGrade)
	})
}

func TestGradeOptions(t *testing.T) {
	options := GradeOptions()
	require.Len(t, options, 7)
	assert.Equal(t, GradeOption{Value: GradeVBV0, Label: "VB - V0"}, options[0])
	assert.Equal(t, GradeOption{Value: GradeV11Up, Label: "V11+"}, options[6])
}

func TestGroupProjectsByGrade(t *testing.T) {
	t.Run("空の入力でも7つのキーがすべて存在する", func(t *testing.T) {
		grouped, err := GroupProjectsByGrade(nil)
		require.NoError(t, err)
		assert.Len(t, grouped, 7)
		for _, g := range Grades {
			list, ok := grouped[g]
			assert.True(t, ok, "grade %q missing", g)
			assert.NotNil(t, list)
			assert.Empty(t, list)
		}
	})

	t.Run("グループ内で入力順を保つ", func(t *testing.T) {
		projects := []Project{
			{ID: 3, Grade: GradeV3V4},
			{ID: 2, Grade: GradeVBV0},
			{ID: 1, Grade: GradeV3V4},
		}
		grouped, err := GroupProjectsByGrade(projects)
		require.NoError(t, err)
		require.Len(t, grouped[GradeV3V4], 2)
		assert.Equal(t, uint(3), grouped[GradeV3V4][0].ID)
		assert.Equal(t, uint(1), grouped[GradeV3V4][1].ID)
		assert.Len(t, grouped[GradeVBV0], 1)
		assert.Empty(t, grouped[GradeV11Up])
	})

	t.Run("未知のグレードを含むとエラー", func(t *testing.T) {
		_, err := GroupProjectsByGrade([]Project{{ID: 9, Grade: "v99"}})
		assert.ErrorIs(t, err, ErrInvalidGrade)
	})
}
