package seeds

import (
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	labs "easypeasy_backend/internals/seeds/labs"
)

// RunAllSeeds loads the lab catalog from catalogPath.
func RunAllSeeds(db *gorm.DB, catalogPath string) error {
	//* Catalog: lab types + venues
	if _, err := labs.SeedCatalogFromYAML(db, catalogPath); err != nil {
		log.WithError(err).Error("❌ catalog seed failed")
		return err
	}
	return nil
}
