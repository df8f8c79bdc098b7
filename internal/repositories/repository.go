package repositories

import (
	"depositdefender/internal/database"
)

type Repository struct {
	Property PropertyRepository
	Report   ReportRepository
	Share    ShareRepository
}

func New(db database.DB) Repository {
	return Repository{
		Property: NewPropertyRepository(db), // property reads go through the cache when configured
		Report:   NewReportRepository(db),
		Share:    NewShareRepository(db),
	}
}
