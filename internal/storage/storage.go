package storage

import "proposalScope/internal/model"

// Storage defines a sink for graph artifacts.
type Storage interface {
	SaveArtifact(artifact *model.GraphArtifact) error
}
