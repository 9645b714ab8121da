package recommend

// Condition maps a health condition, or one of its short forms, to poses.
type Condition struct {
	Name  string
	Poses []string
}

// Table is an ordered condition list. Order matters: the multi-word match
// stops at the first condition that lines up.
type Table []Condition

// Lookup returns the poses for name.
func (t Table) Lookup(name string) ([]string, bool) {
	for _, c := range t {
		if c.Name == name {
			return c.Poses, true
		}
	}
	return nil, false
}

// Names returns every condition name in table order.
func (t Table) Names() []string {
	names := make([]string, len(t))
	for i, c := range t {
		names[i] = c.Name
	}
	return names
}

// DefaultTable is the built-in condition table.
var DefaultTable = Table{
	// Mental health
	{"stress", []string{"child_s_pose", "cat-cow_pose"}},
	{"anxiety", []string{"breathing_exercises", "savasana"}},
	{"depression", []string{"sun_salutation", "warrior_i_pose", "triangle_pose"}},
	{"insomnia", []string{"child_s_pose", "legs_up_the_wall_pose", "savasana"}},
	{"ptsd", []string{"tree_pose", "mountain_pose", "eagle_pose"}},
	{"mental stress", []string{"child_s_pose", "cat-cow_pose"}},

	// Chronic pain
	{"back_pain", []string{"knee_to_chest", "downward_facing_dog_pose"}},
	{"neck_pain", []string{"neck_rolls", "shoulder_rolls", "arm_circles"}},
	{"headaches", []string{"child_s_pose", "legs_up_the_wall_pose", "savasana"}},
	{"arthritis", []string{"gentle_stretching", "triangle_pose", "breathing_exercises"}},
	{"fibromyalgia", []string{"child_s_pose", "gentle_stretching", "deep_breathing_exercises"}},
	{"bp", []string{"knee_to_chest", "downward_facing_dog_pose"}},

	// Cardiovascular
	{"heart_disease", []string{"deep_breathing_exercises", "legs_up_the_wall_pose", "bridge_pose"}},
	{"high_blood_pressure", []string{"deep_breathing_exercises", "reclining_bound_angle_pose", "bridge_pose"}},
	{"high_cholesterol", []string{"sun_salutation", "warrior_i_pose", "triangle_pose"}},
	{"stroke", []string{"deep_breathing_exercises", "cat-cow_pose", "bridge_pose"}},
	{"hbp", []string{"deep_breathing_exercises", "reclining_bound_angle_pose", "bridge_pose"}},

	// Respiratory
	{"asthma", []string{"deep_breathing_exercises", "cat-cow_pose", "bridge_pose"}},
	{"copd", []string{"deep_breathing_exercises", "cat-cow_pose", "bridge_pose"}},
	{"bronchitis", []string{"deep_breathing_exercises", "cat-cow_pose", "bridge_pose"}},
	{"pneumonia", []string{"deep_breathing_exercises", "cat-cow_pose", "bridge_pose"}},

	// Digestive
	{"constipation", []string{"cat-cow_pose", "twist_pose", "bridge_pose"}},
	{"diarrhea", []string{"child_s_pose", "legs_up_the_wall_pose", "savasana"}},
	{"ibs", []string{"deep_breathing_exercises", "twisting_poses", "bridge_pose"}},
	{"gerd", []string{"bridge_pose", "cat-cow_pose", "downward_facing_dog_pose"}},
	{"ulcers", []string{"child_s_pose", "legs_up_the_wall_pose", "savasana"}},

	// Hormonal
	{"menopause", []string{"deep_breathing_exercises", "child_s_pose", "bridge_pose"}},
	{"thyroid_disorders", []string{"deep_breathing_exercises", "shoulder_stand_pose", "bridge_pose"}},
	{"pcos", []string{"deep_breathing_exercises", "cobra_pose", "bridge_pose"}},
	{"pms", []string{"deep_breathing_exercises", "child_s_pose", "bridge_pose"}},

	// Autoimmune
	{"lupus", []string{"deep_breathing_exercises", "sun_salutation", "bridge_pose"}},
	{"rheumatoid_arthritis", []string{"gentle-stretches", "savasana", "breathing_exercises"}},
	{"multiple_sclerosis", []string{"gentle-stretches", "legs_up_the_wall_pose"}},
	{"hashimotos_thyroiditis", []string{"deep_breathing_exercises", "shoulder_stand_pose", "bridge_pose"}},
	{"crohns_disease", []string{"deep_breathing_exercises", "child_s_pose", "bridge_pose"}},
	{"ulcerative_colitis", []string{"deep_breathing_exercises", "supine_twist_pose", "bridge_pose"}},
	{"ra", []string{"gentle-stretches", "savasana", "breathing_exercises"}},
}
