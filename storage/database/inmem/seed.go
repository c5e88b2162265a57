package inmemdb

import (
	"time"

	"github.com/pkg/errors"

	"github.com/aulaedu/aula/core/course"
	"github.com/aulaedu/aula/core/user"
)

// Seed loads the demo fixtures into an empty DB. Insert order matters: the
// fixture ids are the ones the tables will assign.
func Seed(db *DB) error {
	usrRepo := NewUserRepository(db)
	crsRepo := NewCourseRepository(db)

	for _, usr := range seedUsers {
		if _, err := usrRepo.CreateUser(usr); err != nil {
			return errors.Wrap(err, "seeding users")
		}
	}
	for _, crs := range seedCourses {
		if _, err := crsRepo.CreateCourse(crs); err != nil {
			return errors.Wrap(err, "seeding courses")
		}
	}
	for _, mod := range seedModules {
		if _, err := crsRepo.CreateModule(mod); err != nil {
			return errors.Wrap(err, "seeding modules")
		}
	}
	for _, lsn := range seedLessons {
		if _, err := crsRepo.CreateLesson(lsn); err != nil {
			return errors.Wrap(err, "seeding lessons")
		}
	}
	for _, enr := range seedEnrollments {
		if _, err := crsRepo.CreateEnrollment(enr); err != nil {
			return errors.Wrap(err, "seeding enrollments")
		}
	}
	return nil
}

var seedUsers = []user.User{
	{
		Name:   "Juan Estudiante",
		Email:  "student@example.com",
		Secret: "password",
		Role:   user.RoleStudent,
		Avatar: "https://ui-avatars.com/api/?name=Juan+Estudiante&background=random",
	},
	{
		Name:   "Maria Capacitadora",
		Email:  "trainer@example.com",
		Secret: "password",
		Role:   user.RoleTrainer,
		Avatar: "https://ui-avatars.com/api/?name=Maria+Capacitadora&background=random",
	},
	{
		Name:   "Carlos Admin",
		Email:  "admin@example.com",
		Secret: "password",
		Role:   user.RoleAdmin,
		Avatar: "https://ui-avatars.com/api/?name=Carlos+Admin&background=random",
	},
}

var seedCourses = []course.Course{
	{
		TrainerID:   2,
		Title:       "Fundamentos de Pedagogía Moderna",
		Description: "Un curso completo sobre los fundamentos de la pedagogía moderna y su aplicación en el aula.",
		Objectives: []string{
			"Comprender los principios básicos de la pedagogía moderna",
			"Aplicar metodologías actuales en el aula",
			"Desarrollar estrategias de enseñanza efectivas",
		},
		Subject:   "Pedagogía",
		Level:     "Principiante",
		Thumbnail: "https://images.unsplash.com/photo-1544717305-2782549b5136?q=80&w=800&auto=format&fit=crop",
		CreatedAt: time.Date(2023, time.January, 15, 0, 0, 0, 0, time.UTC),
	},
	{
		TrainerID:   2,
		Title:       "Tecnología Educativa en el Aula Digital",
		Description: "Aprende a integrar herramientas tecnológicas en tus clases para mejorar el aprendizaje.",
		Objectives: []string{
			"Conocer las principales herramientas digitales para educación",
			"Integrar la tecnología en el plan de estudios",
			"Evaluar el impacto de las herramientas digitales",
		},
		Subject:   "Tecnología Educativa",
		Level:     "Intermedio",
		Thumbnail: "https://images.unsplash.com/photo-1516321165247-4aa89a48be28?q=80&w=800&auto=format&fit=crop",
		CreatedAt: time.Date(2023, time.February, 20, 0, 0, 0, 0, time.UTC),
	},
	{
		TrainerID:   2,
		Title:       "Educación Inclusiva: Estrategias y Prácticas",
		Description: "Estrategias para crear un ambiente inclusivo y adaptado a las necesidades de todos los estudiantes.",
		Objectives: []string{
			"Identificar las necesidades de estudiantes diversos",
			"Diseñar planes de estudio inclusivos",
			"Implementar adaptaciones curriculares efectivas",
		},
		Subject:   "Educación Inclusiva",
		Level:     "Avanzado",
		Thumbnail: "https://images.unsplash.com/photo-1577896851231-70ef18881754?q=80&w=800&auto=format&fit=crop",
		CreatedAt: time.Date(2023, time.March, 10, 0, 0, 0, 0, time.UTC),
	},
	{
		TrainerID:   2,
		Title:       "Evaluación Formativa en Educación",
		Description: "Métodos y técnicas de evaluación formativa para mejorar el proceso de aprendizaje.",
		Objectives: []string{
			"Comprender los principios de la evaluación formativa",
			"Diseñar instrumentos de evaluación efectivos",
			"Implementar estrategias de retroalimentación constructiva",
		},
		Subject:   "Evaluación Educativa",
		Level:     "Intermedio",
		Thumbnail: "https://images.unsplash.com/photo-1509062522246-3755977927d7?q=80&w=800&auto=format&fit=crop",
		CreatedAt: time.Date(2023, time.April, 5, 0, 0, 0, 0, time.UTC),
	},
	{
		TrainerID:   2,
		Title:       "Gestión del Aula y Clima Escolar",
		Description: "Estrategias para crear un ambiente positivo de aprendizaje y manejar eficazmente el aula.",
		Objectives: []string{
			"Desarrollar técnicas de gestión del aula",
			"Crear un clima escolar positivo",
			"Resolver conflictos de manera constructiva",
		},
		Subject:   "Gestión Educativa",
		Level:     "Principiante",
		Thumbnail: "https://images.unsplash.com/photo-1517245386807-bb43f82c33c4?q=80&w=800&auto=format&fit=crop",
		CreatedAt: time.Date(2023, time.May, 12, 0, 0, 0, 0, time.UTC),
	},
	{
		TrainerID:   2,
		Title:       "Neurociencia Aplicada al Aprendizaje",
		Description: "Fundamentos de neurociencia y su aplicación en estrategias de enseñanza efectivas.",
		Objectives: []string{
			"Comprender los principios básicos de la neurociencia educativa",
			"Aplicar estrategias basadas en neurociencia",
			"Optimizar el aprendizaje mediante conocimientos neurocientíficos",
		},
		Subject:   "Neurociencia Educativa",
		Level:     "Avanzado",
		Thumbnail: "https://images.unsplash.com/photo-1503676260728-1c00da094a0b?q=80&w=800&auto=format&fit=crop",
		CreatedAt: time.Date(2023, time.June, 18, 0, 0, 0, 0, time.UTC),
	},
}

var seedModules = []course.Module{
	{
		CourseID:    1,
		Title:       "Introducción a la Pedagogía Moderna",
		Description: "Fundamentos y principios básicos de la pedagogía moderna",
		Order:       1,
	},
	{
		CourseID:    1,
		Title:       "Estrategias Didácticas Contemporáneas",
		Description: "Exploración de metodologías y estrategias de enseñanza actuales",
		Order:       2,
	},
	{
		CourseID:    1,
		Title:       "Evaluación del Aprendizaje",
		Description: "Métodos de evaluación efectivos para el aula moderna",
		Order:       3,
	},
	{
		CourseID:    2,
		Title:       "Herramientas Digitales para Educadores",
		Description: "Conoce las herramientas digitales más relevantes para el aula",
		Order:       1,
	},
	{
		CourseID:    2,
		Title:       "Integración de Tecnología en el Currículum",
		Description: "Estrategias para integrar la tecnología en tus clases diarias",
		Order:       2,
	},
	{
		CourseID:    3,
		Title:       "Fundamentos de la Educación Inclusiva",
		Description: "Principios básicos de la inclusión en entornos educativos",
		Order:       1,
	},
}

var seedLessons = []course.Lesson{
	{
		ModuleID: 1,
		Title:    "Evolución de la Pedagogía en el Siglo XXI",
		Kind:     course.KindVideo,
		Content:  "https://www.youtube.com/embed/dQw4w9WgXcQ",
		Duration: 15,
		Order:    1,
	},
	{
		ModuleID: 1,
		Title:    "Principales Corrientes Pedagógicas Contemporáneas",
		Kind:     course.KindText,
		Content: `
      <h2>Corrientes Pedagógicas Contemporáneas</h2>

      <p>La pedagogía moderna se ha diversificado en múltiples corrientes. A continuación, exploraremos las más influyentes:</p>

      <h3>1. Constructivismo</h3>
      <p>Basado en las teorías de Piaget y Vygotsky, propone que el conocimiento se construye activamente por el estudiante.</p>

      <h3>2. Pedagogía Crítica</h3>
      <p>Inspirada en Paulo Freire, busca empoderar a los estudiantes para cuestionar y transformar las estructuras sociales.</p>

      <h3>3. Aprendizaje Basado en Proyectos</h3>
      <p>Metodología que involucra a los estudiantes en proyectos complejos y significativos para desarrollar conocimientos y habilidades.</p>
    `,
		Duration: 20,
		Order:    2,
	},
	{
		ModuleID: 1,
		Title:    "La Neurociencia y su Impacto en la Pedagogía",
		Kind:     course.KindVideo,
		Content:  "https://www.youtube.com/embed/dQw4w9WgXcQ",
		Duration: 18,
		Order:    3,
	},
	{
		ModuleID: 2,
		Title:    "Aprendizaje Basado en Proyectos",
		Kind:     course.KindVideo,
		Content:  "https://www.youtube.com/embed/dQw4w9WgXcQ",
		Duration: 22,
		Order:    1,
	},
	{
		ModuleID: 2,
		Title:    "Aula Invertida: Fundamentos y Aplicación",
		Kind:     course.KindPDF,
		Content:  "https://example.com/aula-invertida.pdf",
		Duration: 25,
		Order:    2,
	},
	{
		ModuleID: 4,
		Title:    "Herramientas de Colaboración Digital para el Aula",
		Kind:     course.KindVideo,
		Content:  "https://www.youtube.com/embed/dQw4w9WgXcQ",
		Duration: 20,
		Order:    1,
	},
}

var seedEnrollments = []course.Enrollment{
	{
		StudentID:    1,
		CourseID:     1,
		Progress:     30,
		LastActivity: time.Date(2023, time.September, 15, 14, 30, 0, 0, time.UTC),
	},
	{
		StudentID:    1,
		CourseID:     2,
		Progress:     15,
		LastActivity: time.Date(2023, time.September, 18, 10, 45, 0, 0, time.UTC),
	},
	{
		StudentID:    1,
		CourseID:     5,
		Progress:     60,
		LastActivity: time.Date(2023, time.September, 20, 16, 20, 0, 0, time.UTC),
	},
}
