package model

import "fmt"

// Grade はボルダリングの難易度帯です (7段階、順序あり)
type Grade string

const (
	GradeVBV0  Grade = "vb_v0"
	GradeV1V2  Grade = "v1_v2"
	GradeV3V4  Grade = "v3_v4"
	GradeV5V6  Grade = "v5_v6"
	GradeV7V8  Grade = "v7_v8"
	GradeV9V10 Grade = "v9_v10"
	GradeV11Up Grade = "v11_"
)

// Grades は表示順に並んだ全グレードです
var Grades = []Grade{
	GradeVBV0,
	GradeV1V2,
	GradeV3V4,
	GradeV5V6,
	GradeV7V8,
	GradeV9V10,
	GradeV11Up,
}

var gradeLabels = map[Grade]string{
	GradeVBV0:  "VB - V0",
	GradeV1V2:  "V1 - V2",
	GradeV3V4:  "V3 - V4",
	GradeV5V6:  "V5 - V6",
	GradeV7V8:  "V7 - V8",
	GradeV9V10: "V9 - V10",
	GradeV11Up: "V11+",
}

var gradeSet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(Grades))
	for _, g := range Grades {
		set[string(g)] = struct{}{}
	}
	return set
}()

// IsGrade は value が既知のグレードかどうかを返します
func IsGrade(value string) bool {
	_, ok := gradeSet[value]
	return ok
}

// Label は表示用のラベルを返します
func (g Grade) Label() (string, error) {
	label, ok := gradeLabels[g]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidGrade, string(g))
	}
	return label, nil
}

// GradeOption は画面のグレード選択肢1件分です
type GradeOption struct {
	Value Grade  `json:"value"`
	Label string `json:"label"`
}

// GradeOptions は全グレードの選択肢を表示順に返します
func GradeOptions() []GradeOption {
	options := make([]GradeOption, 0, len(Grades))
	for _, g := range Grades {
		label, _ := g.Label()
		options = append(options, GradeOption{Value: g, Label: label})
	}
	return options
}

// GroupProjectsByGrade はプロジェクトをグレードごとに振り分けます。
// 7つのキーは常にすべて含まれ、入力の順序は各グループ内で保たれます。
func GroupProjectsByGrade(projects []Project) (map[Grade][]Project, error) {
	grouped := make(map[Grade][]Project, len(Grades))
	for _, g := range Grades {
		grouped[g] = []Project{}
	}
	for _, p := range projects {
		if !IsGrade(string(p.Grade)) {
			return nil, fmt.Errorf("project %d: %w: %q", p.ID, ErrInvalidGrade, string(p.Grade))
		}
		grouped[p.Grade] = append(grouped[p.Grade], p)
	}
	return grouped, nil
}
