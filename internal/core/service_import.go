package core

import (
	"context"
	"errors"
	"fmt"
)

// ImportFile parses an uploaded file and imports its rows as kind.
// Parse failures abort before any row is attempted.
func (s *Service) ImportFile(ctx context.Context, kind, fileName string, data []byte, actor string) (*BatchResult, error) {
	def, err := Lookup(kind)
	if err != nil {
		return nil, err
	}
	rows, err := ParseFile(fileName, data)
	if err != nil {
		return nil, err
	}
	result, err := s.importRows(ctx, def, SourceUpload, rows, actor)
	s.auditBatch(ctx, ActionImport, fileName, result, actor)
	return result, err
}

// ImportWebhook imports the rows of an integration payload as kind.
func (s *Service) ImportWebhook(ctx context.Context, kind string, body []byte, actor string) (*BatchResult, error) {
	def, err := Lookup(kind)
	if err != nil {
		return nil, err
	}
	rows, err := ParseWebhook(body)
	if err != nil {
		return nil, err
	}
	result, err := s.importRows(ctx, def, SourceWebhook, rows, actor)
	s.auditBatch(ctx, ActionImport, "", result, actor)
	return result, err
}

// ImportRows imports already-parsed rows as kind.
func (s *Service) ImportRows(ctx context.Context, kind, source string, rows []RawRow, actor string) (*BatchResult, error) {
	def, err := Lookup(kind)
	if err != nil {
		return nil, err
	}
	return s.importRows(ctx, def, source, rows, actor)
}

// ImportClients imports a client list file. Clients whose national ID is
// already on file fail their row.
func (s *Service) ImportClients(ctx context.Context, fileName string, data []byte, actor string) (*BatchResult, error) {
	rows, err := ParseFile(fileName, data)
	if err != nil {
		return nil, err
	}
	batch := Batch{Kind: KindClient, Source: SourceUpload, Actor: actor, Rows: rows}
	result, err := s.run(ctx, batch, s.importClientRow(actor, s.now()))
	s.auditBatch(ctx, ActionClientImport, fileName, result, actor)
	return result, err
}

func (s *Service) importRows(ctx context.Context, def KindDefinition, source string, rows []RawRow, actor string) (*BatchResult, error) {
	serials := NewSerialAllocator(s.store)
	now := s.now()

	fn := func(ctx context.Context, i int, row RawRow) (ImportedRecord, error) {
		env := &RowEnv{
			Index:   i,
			Actor:   actor,
			Now:     now,
			Clients: s.clients,
			Serials: serials,
		}
		rec, err := def.Process(ctx, env, row)
		if err != nil {
			return ImportedRecord{}, err
		}
		if err := PersistRecord(ctx, s.store, serials, rec); err != nil {
			return ImportedRecord{}, err
		}
		return ImportedRecord{ID: rec.Base().ID, Serial: rec.Serial()}, nil
	}

	batch := Batch{Kind: def.Info.Key, Source: source, Actor: actor, Rows: rows}
	return s.run(ctx, batch, fn)
}

// run acquires an import slot and drives the batch under the import timeout.
func (s *Service) run(ctx context.Context, b Batch, fn RowFunc) (*BatchResult, error) {
	if b.Actor == "" {
		return nil, ErrNoActingUser
	}
	if err := s.limiter.Acquire(ctx); err != nil {
		return nil, err
	}
	defer s.limiter.Release()

	ctx, cancel := context.WithTimeout(ctx, s.importTimeout)
	defer cancel()

	return s.engine.Run(ctx, b, fn)
}

// PersistRecord validates and saves rec. A serial clash at save time is
// retried once with a freshly allocated serial; a second clash fails the
// row as a validation error.
func PersistRecord(ctx context.Context, store RecordStore, serials *SerialAllocator, rec Record) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	err := store.SaveRecord(ctx, rec)
	if !errors.Is(err, ErrDuplicate) {
		return err
	}

	rec.SetSerial(serials.Allocate(ctx, rec.Kind(), rec.Serial()))
	if err := rec.Validate(); err != nil {
		return err
	}
	err = store.SaveRecord(ctx, rec)
	if errors.Is(err, ErrDuplicate) {
		return NewFieldError(serialField(rec), rec.Serial(),
			fmt.Errorf("%w: %w", ErrPersistenceValidation, ErrDuplicateSerial))
	}
	return err
}

func serialField(rec Record) string {
	if def, ok := Get(rec.Kind()); ok {
		return def.Info.SerialField
	}
	return "serialNo"
}
