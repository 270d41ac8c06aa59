package repository

import (
	"context"

	"github.com/shelterpartner/report-service/internal/models"
	"github.com/shelterpartner/report-service/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ShelterRepository handles database operations related to shelters.
type ShelterRepository struct {
	collection *mongo.Collection
}

// NewShelterRepository creates a new instance of ShelterRepository.
func NewShelterRepository(db *mongo.Database) *ShelterRepository {
	return &ShelterRepository{
		collection: db.Collection("shelters"),
	}
}

// GetAllShelters fetches every shelter document, including the scheduled
// report settings the invoker sweeps.
func (r *ShelterRepository) GetAllShelters(ctx context.Context) ([]models.Shelter, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		logger.Log.WithError(err).Error("Failed to fetch shelters")
		return nil, err
	}
	defer cursor.Close(ctx)

	var shelters []models.Shelter
	for cursor.Next(ctx) {
		var shelter models.Shelter
		if err := cursor.Decode(&shelter); err != nil {
			logger.Log.WithError(err).Error("Failed to decode shelter")
			return nil, err
		}
		shelters = append(shelters, shelter)
	}
	if err := cursor.Err(); err != nil {
		logger.Log.WithError(err).Error("Shelter cursor failed")
		return nil, err
	}

	logger.Log.WithField("count", len(shelters)).Info("Shelters fetched successfully")
	return shelters, nil
}
