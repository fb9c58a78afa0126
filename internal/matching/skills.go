package matching

import "strings"

func normalizeSkill(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func skillSet(skills []string) map[string]struct{} {
	set := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		set[normalizeSkill(s)] = struct{}{}
	}
	return set
}

// SkillGap compares required skills with the skills a student has.
// It returns how many required entries are covered and the uncovered ones in
// their original casing and order.
func SkillGap(required, have []string) (matched int, missing []string) {
	owned := skillSet(have)
	missing = make([]string, 0, len(required))
	for _, skill := range required {
		if _, ok := owned[normalizeSkill(skill)]; ok {
			matched++
			continue
		}
		missing = append(missing, skill)
	}
	return matched, missing
}
