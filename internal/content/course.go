package content

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/courseforge/courseforge/internal/agents"
	"github.com/courseforge/courseforge/internal/extract"
	"github.com/courseforge/courseforge/internal/normalize"
)

// CourseParams are the inputs for plain course generation.
type CourseParams struct {
	Topic      string
	Difficulty string
	Duration   string
}

// GenerateCourse produces a complete course structure for a topic. Unlike
// the assessment-driven variant there is no fallback course here: a
// response without modules is a hard failure.
func (s *Service) GenerateCourse(ctx context.Context, p CourseParams) (*Result, error) {
	prompt := fmt.Sprintf(`
Generate a complete course structure on %s for %s level with duration %s.

Important guidelines:
1. Create a comprehensive course with clear learning objectives
2. Include modules with logical progression
3. Each module should have related lessons
4. Include realistic time estimates
5. The response MUST be in valid JSON format with the following structure:

%s

Return ONLY the valid JSON object, no additional text before or after.`,
		p.Topic, p.Difficulty, p.Duration, courseJSONShape(p.Difficulty, p.Duration))

	raw, err := s.generateStructured(ctx, agents.CourseDesigner, "course", prompt, courseSchema)
	if err != nil {
		return nil, err
	}

	obj := extract.ExtractObject(raw)
	if obj == nil || len(list(obj, "modules")) == 0 {
		s.log.Warn("course response had no modules", zap.String("topic", p.Topic))
		return nil, fmt.Errorf("generate course: %w", ErrInvalidStructure)
	}

	course, defaulted := normalize.Course(obj, normCtx(p.Topic, p.Difficulty, p.Duration))
	return &Result{Data: course, DefaultsUsed: defaulted}, nil
}

// AssessmentCourseParams are the inputs for assessment-driven course
// generation. Assessment holds the raw client-submitted results object.
type AssessmentCourseParams struct {
	Topic      string
	Duration   string
	Assessment map[string]any
}

// GenerateCourseFromAssessment produces a personalized course outline from
// assessment results. The prompt asks for six to eight modules without
// lesson detail; when the model fails to deliver a usable structure the
// caller still gets a six-module fallback course shaped around the
// learner's dominant style.
func (s *Service) GenerateCourseFromAssessment(ctx context.Context, p AssessmentCourseParams) (*Result, error) {
	difficulty := assessmentString(p.Assessment, "priorKnowledge", "level", "beginner")

	prompt := assessmentCoursePrompt(p, difficulty)
	raw, err := s.generateStructured(ctx, agents.CourseDesigner, "course-assessment", prompt, courseSchema)
	if err != nil {
		return nil, err
	}

	result := &Result{}
	obj := extract.ExtractObject(raw)
	if obj == nil || len(list(obj, "modules")) == 0 {
		s.log.Warn("assessment course response unusable, using fallback",
			zap.String("topic", p.Topic))
		obj = fallbackAssessmentCourse(p, difficulty)
		result.note("Using fallback course structure")
		result.DefaultsUsed = true
	}

	course, defaulted := normalize.Course(obj, normCtx(p.Topic, difficulty, p.Duration))
	result.Data = course
	result.DefaultsUsed = result.DefaultsUsed || defaulted
	return result, nil
}

// PersonaCourseParams are the inputs for persona-styled course generation.
type PersonaCourseParams struct {
	PersonaID  string
	Topic      string
	Difficulty string
	Duration   string
}

// GenerateCourseWithPersona produces a course outline written in a teaching
// persona's voice. This variant never fails on structure: normalization
// synthesizes a minimal course when the response is unusable.
func (s *Service) GenerateCourseWithPersona(ctx context.Context, p PersonaCourseParams) (*Result, error) {
	prompt := fmt.Sprintf(`
You are a course creation system working with a teaching persona (ID: %s).

Generate a complete course outline on the topic "%s" with the following parameters:
- Difficulty level: %s
- Duration: %s

The course should be structured with:
- A compelling course title and description
- 3-6 modules, each with:
  - A title and description
  - 3-5 lessons per module, each with:
    - Title, description, and content summary
    - Estimated duration in minutes
    - Resources (optional)
  - A module assessment

Return the course structure as a valid JSON object with id, title, description,
topic, difficulty, duration, createdAt, updatedAt, and modules fields, where
each module has id, title, description, lessons, and assessment, and each
lesson has id, title, description, contentSummary, estimatedDuration, and
resources.

DO NOT explain the course or include any text before or after the JSON.
Return ONLY the valid JSON object.`,
		p.PersonaID, p.Topic, p.Difficulty, p.Duration)

	raw, err := s.generate(ctx, agents.ContentCreator, "course-persona", prompt)
	if err != nil {
		return nil, err
	}

	course, defaulted := normalize.Course(extract.Extract(raw), normCtx(p.Topic, p.Difficulty, p.Duration))
	result := &Result{Data: course, DefaultsUsed: defaulted}
	if defaulted {
		result.note("Used fallback course structure due to parsing error")
	}
	return result, nil
}

func courseJSONShape(difficulty, duration string) string {
	return fmt.Sprintf("```json\n"+`{
  "title": "Course Title",
  "description": "Course Description",
  "prerequisites": ["Prerequisite 1", "Prerequisite 2"],
  "learningGoals": ["Goal 1", "Goal 2"],
  "modules": [
    {
      "id": "module_1",
      "name": "Module Name",
      "description": "Module Description",
      "order": 1,
      "duration": 7,
      "lessons": [
        {
          "id": "lesson_1",
          "title": "Lesson Title",
          "content": "Lesson Content Overview",
          "order": 1,
          "duration": 2
        }
      ]
    }
  ],
  "difficulty": "%s",
  "duration": "%s"
}`+"\n```", difficulty, duration)
}

func assessmentCoursePrompt(p AssessmentCourseParams, difficulty string) string {
	styles, _ := p.Assessment["learningStyle"].(map[string]any)
	timeCommit, _ := p.Assessment["timeCommitment"].(map[string]any)
	prefs, _ := p.Assessment["preferences"].(map[string]any)
	challenges, _ := p.Assessment["challenges"].([]any)

	challengeText := make([]string, 0, len(challenges))
	for _, c := range challenges {
		if str, ok := c.(string); ok {
			challengeText = append(challengeText, str)
		}
	}

	pace, _ := p.Assessment["recommendedPace"].(string)
	if pace == "" {
		pace = "standard"
	}

	return fmt.Sprintf(`
Generate a personalized course outline on "%s" with duration %s,
tailored to the following user assessment results:

Learning Style Preferences:
- Visual: %v
- Auditory: %v
- Reading: %v
- Kinesthetic: %v

Time Commitment:
- Hours per week: %v
- Preferred time of day: %v

Prior Knowledge:
- Level: %s

Content Preferences:
- Practical projects: %v
- Group work: %v
- Reading materials: %v
- Video content: %v
- Interactive exercises: %v

Learning Challenges:
%s

Recommended Pace:
%s

IMPORTANT REQUIREMENTS:
1. Focus on creating MORE MODULES (6-8 modules minimum) with a logical learning progression
2. For each module, include ONLY a title, description, and estimated duration
3. Modules should be comprehensive but focused on specific sub-topics
4. Do NOT generate detailed lessons content at this stage - lessons will be generated later
5. Ensure modules build on each other in a progressive learning path

The response MUST be in valid JSON format with the following structure:

%s

Return ONLY the valid JSON object, no additional text before or after.`,
		p.Topic, p.Duration,
		styleScore(styles, "visual"), styleScore(styles, "auditory"),
		styleScore(styles, "reading"), styleScore(styles, "kinesthetic"),
		orDefault(timeCommit, "hoursPerWeek", 5), orDefault(timeCommit, "preferredTimeOfDay", "flexible"),
		difficulty,
		orDefault(prefs, "practicalProjects", false), orDefault(prefs, "groupWork", false),
		orDefault(prefs, "readingMaterials", false), orDefault(prefs, "videoContent", false),
		orDefault(prefs, "interactiveExercises", false),
		strings.Join(challengeText, ", "),
		pace,
		courseJSONShape(difficulty, p.Duration))
}

// fallbackAssessmentCourse builds the six-module course used when the model
// fails to produce a usable outline. Module durations split the course
// duration evenly; the description names the learner's dominant style.
func fallbackAssessmentCourse(p AssessmentCourseParams, difficulty string) map[string]any {
	styles, _ := p.Assessment["learningStyle"].(map[string]any)
	style := dominantStyle(styles)

	weeks := leadingInt(p.Duration, 4)
	moduleDays := weeks * 7 / 6

	moduleSpecs := []struct{ name, desc string }{
		{fmt.Sprintf("Introduction to %s", p.Topic),
			fmt.Sprintf("Get started with the fundamentals of %s and establish a solid foundation for the rest of the course.", p.Topic)},
		{fmt.Sprintf("Core %s Concepts", p.Topic),
			fmt.Sprintf("Explore the essential concepts and principles of %s through structured learning and examples.", p.Topic)},
		{fmt.Sprintf("Practical %s Applications", p.Topic),
			fmt.Sprintf("Apply your knowledge of %s to solve real-world problems and build practical skills.", p.Topic)},
		{fmt.Sprintf("Advanced %s Techniques", p.Topic),
			fmt.Sprintf("Deepen your understanding of %s with more advanced concepts and specialized techniques.", p.Topic)},
		{fmt.Sprintf("%s Best Practices", p.Topic),
			fmt.Sprintf("Learn industry best practices and optimization strategies for working with %s.", p.Topic)},
		{fmt.Sprintf("Mastering %s", p.Topic),
			fmt.Sprintf("Put everything together to master %s through comprehensive projects and case studies.", p.Topic)},
	}

	modules := make([]any, len(moduleSpecs))
	for i, spec := range moduleSpecs {
		modules[i] = map[string]any{
			"id":          fmt.Sprintf("module_%d", i+1),
			"name":        spec.name,
			"description": spec.desc,
			"order":       i + 1,
			"duration":    moduleDays,
			"lessons":     []any{},
		}
	}

	return map[string]any{
		"id":    normalize.ID("course"),
		"title": fmt.Sprintf("%s - %s Level Course", p.Topic, capitalize(difficulty)),
		"description": fmt.Sprintf("A %s course on %s for %s level students, optimized for %s learners.",
			p.Duration, p.Topic, difficulty, style),
		"prerequisites": []any{
			fmt.Sprintf("Basic understanding of %s concepts", p.Topic),
			"Willingness to learn and practice regularly",
		},
		"learningGoals": []any{
			fmt.Sprintf("Understand core %s concepts and principles", p.Topic),
			"Apply theoretical knowledge to practical problems",
			fmt.Sprintf("Develop confidence in working with %s", p.Topic),
			"Build a foundation for more advanced learning",
		},
		"modules":    modules,
		"difficulty": difficulty,
		"duration":   p.Duration,
	}
}

// dominantStyle picks the learning style with the highest score, "mixed"
// when no scores are present.
func dominantStyle(styles map[string]any) string {
	best := "mixed"
	bestScore := 0.0
	for _, name := range []string{"visual", "auditory", "reading", "kinesthetic"} {
		if score, ok := styles[name].(float64); ok && score > bestScore {
			best = name
			bestScore = score
		}
	}
	return best
}

func styleScore(styles map[string]any, name string) any {
	if v, ok := styles[name]; ok {
		return v
	}
	return 0
}

func orDefault(m map[string]any, key string, fallback any) any {
	if v, ok := m[key]; ok {
		return v
	}
	return fallback
}

func assessmentString(assessment map[string]any, section, key, fallback string) string {
	if sec, ok := assessment[section].(map[string]any); ok {
		if v, ok := sec[key].(string); ok && v != "" {
			return v
		}
	}
	return fallback
}

// leadingInt parses the first integer in a duration string like "4-6 weeks".
func leadingInt(s string, fallback int) int {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 {
		return fallback
	}
	n, err := strconv.Atoi(s[:i])
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func list(obj map[string]any, key string) []any {
	l, _ := obj[key].([]any)
	return l
}
