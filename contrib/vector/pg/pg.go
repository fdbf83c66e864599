package pg

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	_ "github.com/lib/pq"

	smerrors "github.com/studymate-ai/studymate/errors"
	"github.com/studymate-ai/studymate/vector"
)

// PGVectorStore implements VectorStore using PostgreSQL with the pgvector extension.
// Suited for corpora that must survive process restarts; the in-memory store
// covers single-session use.
type PGVectorStore struct {
	db        *sql.DB
	dimension int
	tableName string
}

// Config holds pgvector connection configuration.
type Config struct {
	Host      string
	Port      int
	User      string
	Password  string
	DBName    string
	SSLMode   string
	Dimension int    // Embedding dimension (default: 1536)
	TableName string // Table name (default: passages)
}

// DefaultConfig returns default pgvector configuration.
func DefaultConfig() *Config {
	return &Config{
		Host:      "127.0.0.1",
		Port:      5432,
		User:      "postgres",
		Password:  "",
		DBName:    "studymate",
		SSLMode:   "disable",
		Dimension: 1536,
		TableName: "passages",
	}
}

// New connects to PostgreSQL and prepares the passage table.
func New(cfg *Config) (*PGVectorStore, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("connect to PostgreSQL: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping PostgreSQL: %w", err)
	}

	store := &PGVectorStore{
		db:        db,
		dimension: cfg.Dimension,
		tableName: cfg.TableName,
	}
	if err := store.setup(context.Background()); err != nil {
		return nil, fmt.Errorf("setup pgvector: %w", err)
	}
	return store, nil
}

func (s *PGVectorStore) setup(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "CREATE EXTENSION IF NOT EXISTS vector"); err != nil {
		return fmt.Errorf("create vector extension: %w", err)
	}

	createTableSQL := fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS %s (
		id VARCHAR(255) PRIMARY KEY,
		text TEXT NOT NULL,
		embedding vector(%d) NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`, s.tableName, s.dimension)

	if _, err := s.db.ExecContext(ctx, createTableSQL); err != nil {
		return fmt.Errorf("create table: %w", err)
	}
	return nil
}

// AddEmbedding adds a new embedding to the store
func (s *PGVectorStore) AddEmbedding(ctx context.Context, embedding *vector.Embedding) error {
	if embedding == nil {
		return fmt.Errorf("embedding cannot be nil")
	}
	if embedding.ID == "" {
		return fmt.Errorf("embedding ID cannot be empty")
	}
	if len(embedding.Vector) != s.dimension {
		return fmt.Errorf("embedding dimension mismatch: expected %d, got %d", s.dimension, len(embedding.Vector))
	}

	query := fmt.Sprintf(`
	INSERT INTO %s (id, text, embedding)
	VALUES ($1, $2, $3::vector)
	ON CONFLICT (id) DO UPDATE SET
		text = EXCLUDED.text,
		embedding = EXCLUDED.embedding,
		created_at = CURRENT_TIMESTAMP
	`, s.tableName)

	if _, err := s.db.ExecContext(ctx, query, embedding.ID, embedding.Text, vectorToString(embedding.Vector)); err != nil {
		return fmt.Errorf("add embedding: %w", err)
	}
	return nil
}

// Search finds embeddings similar to the query vector
func (s *PGVectorStore) Search(ctx context.Context, queryVector []float32, topK int) ([]*vector.Embedding, error) {
	if len(queryVector) == 0 {
		return nil, fmt.Errorf("query vector cannot be empty")
	}
	if len(queryVector) != s.dimension {
		return nil, fmt.Errorf("query vector dimension mismatch: expected %d, got %d", s.dimension, len(queryVector))
	}
	if topK <= 0 {
		topK = 10
	}

	query := fmt.Sprintf(`
	SELECT id, text, embedding
	FROM %s
	ORDER BY embedding <-> $1::vector
	LIMIT $2
	`, s.tableName)

	rows, err := s.db.QueryContext(ctx, query, vectorToString(queryVector), topK)
	if err != nil {
		return nil, fmt.Errorf("search embeddings: %w", err)
	}
	defer rows.Close()

	embeddings := make([]*vector.Embedding, 0, topK)
	for rows.Next() {
		var id, text, vectorStr string
		if err := rows.Scan(&id, &text, &vectorStr); err != nil {
			return nil, fmt.Errorf("scan embedding: %w", err)
		}
		vec, err := stringToVector(vectorStr)
		if err != nil {
			return nil, fmt.Errorf("parse vector for embedding %s: %w", id, err)
		}
		embeddings = append(embeddings, &vector.Embedding{
			ID:     id,
			Text:   text,
			Vector: vec,
		})
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate embeddings: %w", err)
	}
	return embeddings, nil
}

// DeleteEmbedding removes an embedding by ID
func (s *PGVectorStore) DeleteEmbedding(ctx context.Context, id string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE id = $1", s.tableName)
	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete embedding: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("embedding %s: %w", id, smerrors.ErrNotFound)
	}
	return nil
}

// Clear removes all embeddings
func (s *PGVectorStore) Clear(ctx context.Context) error {
	query := fmt.Sprintf("TRUNCATE TABLE %s", s.tableName)
	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("clear embeddings: %w", err)
	}
	return nil
}

// Count returns the number of embeddings
func (s *PGVectorStore) Count(ctx context.Context) (int, error) {
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s", s.tableName)
	var count int
	if err := s.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("count embeddings: %w", err)
	}
	return count, nil
}

// Close releases the underlying connection pool.
func (s *PGVectorStore) Close() error {
	return s.db.Close()
}

func vectorToString(vec []float32) string {
	parts := make([]string, len(vec))
	for i, v := range vec {
		parts[i] = strconv.FormatFloat(float64(v), 'f', -1, 32)
	}
	return "[" + strings.Join(parts, ",") + "]"
}

func stringToVector(s string) ([]float32, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "[")
	s = strings.TrimSuffix(s, "]")
	if s == "" {
		return nil, fmt.Errorf("empty vector string")
	}
	parts := strings.Split(s, ",")
	vec := make([]float32, len(parts))
	for i, part := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(part), 32)
		if err != nil {
			return nil, fmt.Errorf("parse component %d: %w", i, err)
		}
		vec[i] = float32(f)
	}
	return vec, nil
}
