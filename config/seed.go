package config

import (
	"log"

	"gorm.io/gorm"

	"github.com/nccabhyas/ncc-training-backend/models"
)

// defaultSyllabus is the common-subjects portion of the NCC cadet syllabus.
// Seeded only when the syllabus table is empty; instructors extend it from
// there.
var defaultSyllabus = []struct {
	Subject string
	Topics  []string
}{
	{"The NCC", []string{"Aims and Organisation of NCC", "NCC Song and Motto", "Incentives for NCC Cadets"}},
	{"Drill", []string{"Foot Drill Basics", "Saluting and Compliments", "Marching and Turnings", "Ceremonial Drill"}},
	{"Weapon Training", []string{"Parts of a Rifle", "Handling and Safety", "Firing Positions", "Range Procedure"}},
	{"Map Reading", []string{"Conventional Signs", "Grid References", "Use of Compass", "Finding North"}},
	{"Field Craft and Battle Craft", []string{"Judging Distance", "Field Signals", "Section Formations", "Camouflage and Concealment"}},
	{"First Aid and Hygiene", []string{"Basics of First Aid", "Bandages and Dressings", "Hygiene and Sanitation"}},
	{"Leadership", []string{"Qualities of a Leader", "Discipline and Duty", "Team Building"}},
	{"National Integration", []string{"Unity in Diversity", "National Symbols", "Contribution of Youth to Nation Building"}},
	{"Adventure Training", []string{"Trekking", "Obstacle Course", "Camp Activities"}},
}

// SeedSyllabus loads the default syllabus tree into an empty database.
func SeedSyllabus(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.SyllabusSubject{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for i, entry := range defaultSyllabus {
		subject := models.SyllabusSubject{Name: entry.Subject, Position: i}
		for j, name := range entry.Topics {
			subject.Topics = append(subject.Topics, models.SyllabusTopic{Name: name, Position: j})
		}
		if err := db.Create(&subject).Error; err != nil {
			return err
		}
	}
	log.Printf("seeded default syllabus: %d subjects", len(defaultSyllabus))
	return nil
}
