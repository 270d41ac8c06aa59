package repository

import (
	"context"
	"fmt"

	"github.com/shelterpartner/report-service/internal/models"
	"github.com/shelterpartner/report-service/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// AnimalRepository handles database operations related to animals.
// Animals live in one collection per species, keyed by shelter_id, the
// same partitioning the sync jobs write into.
type AnimalRepository struct {
	db *mongo.Database
}

// NewAnimalRepository creates a new instance of AnimalRepository.
func NewAnimalRepository(db *mongo.Database) *AnimalRepository {
	return &AnimalRepository{db: db}
}

var speciesCollections = map[string]string{
	models.SpeciesCat: "cats",
	models.SpeciesDog: "dogs",
}

// GetAnimalsBySpecies fetches every animal of one species for a shelter.
func (r *AnimalRepository) GetAnimalsBySpecies(ctx context.Context, shelterID, species string) ([]models.Animal, error) {
	collName, ok := speciesCollections[species]
	if !ok {
		return nil, fmt.Errorf("unknown species %q", species)
	}

	cursor, err := r.db.Collection(collName).Find(ctx, bson.M{"shelter_id": shelterID})
	if err != nil {
		logger.Log.WithError(err).WithFields(map[string]interface{}{
			"shelter_id": shelterID,
			"species":    species,
		}).Error("Failed to fetch animals")
		return nil, err
	}
	defer cursor.Close(ctx)

	var animals []models.Animal
	for cursor.Next(ctx) {
		var animal models.Animal
		if err := cursor.Decode(&animal); err != nil {
			logger.Log.WithError(err).Error("Failed to decode animal")
			return nil, err
		}
		animal.Species = species
		animals = append(animals, animal)
	}
	if err := cursor.Err(); err != nil {
		logger.Log.WithError(err).Error("Animal cursor failed")
		return nil, err
	}

	logger.Log.WithFields(map[string]interface{}{
		"shelter_id": shelterID,
		"species":    species,
		"count":      len(animals),
	}).Info("Animals fetched successfully")

	return animals, nil
}
