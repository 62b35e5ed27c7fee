package storage

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/Psyborgs-git/coddle.ai-demo/internal"
)

// FileStorage keeps everything in memory and flushes to JSON files through
// debounced background workers, so a burst of edits costs one write.
type FileStorage struct {
	sessions        map[string]*internal.SleepSession
	profileSessions map[string][]*internal.SleepSession // profileID -> sessions, newest first
	profiles        map[string]*internal.BabyProfile
	states          map[string]internal.LearnerState // profileID -> latest state
	mu              sync.RWMutex

	sessionsFile string
	profilesFile string
	statesFile   string

	saveChan     chan struct{}
	shutdownChan chan struct{}
	saveDelay    time.Duration
	logger       internal.Logger
}

func NewFileStorage(sessionsFile, profilesFile, statesFile string, logger internal.Logger) (*FileStorage, error) {
	s := &FileStorage{
		sessions:        make(map[string]*internal.SleepSession),
		profileSessions: make(map[string][]*internal.SleepSession),
		profiles:        make(map[string]*internal.BabyProfile),
		states:          make(map[string]internal.LearnerState),
		sessionsFile:    sessionsFile,
		profilesFile:    profilesFile,
		statesFile:      statesFile,
		saveChan:        make(chan struct{}, 1),
		shutdownChan:    make(chan struct{}),
		saveDelay:       500 * time.Millisecond,
		logger:          logger,
	}

	if err := s.loadSessions(); err != nil {
		logger.Errorf("storage: failed to load sessions: %v", err)
		return nil, err
	}
	if err := s.loadProfiles(); err != nil {
		logger.Errorf("storage: failed to load profiles: %v", err)
		return nil, err
	}
	if err := s.loadStates(); err != nil {
		logger.Errorf("storage: failed to load learner states: %v", err)
		return nil, err
	}

	go s.saveWorker()

	return s, nil
}

func decodeJSONFile(path string, v interface{}) error {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer file.Close()
	if err := json.NewDecoder(file).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	return nil
}

func (s *FileStorage) loadSessions() error {
	var sessions []*internal.SleepSession
	if err := decodeJSONFile(s.sessionsFile, &sessions); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sess := range sessions {
		s.sessions[sess.ID] = sess
		s.profileSessions[sess.ProfileID] = append(s.profileSessions[sess.ProfileID], sess)
	}
	for profileID := range s.profileSessions {
		s.sortProfileIndex(profileID)
	}
	return nil
}

func (s *FileStorage) loadProfiles() error {
	var profiles []*internal.BabyProfile
	if err := decodeJSONFile(s.profilesFile, &profiles); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range profiles {
		s.profiles[p.ID] = p
	}
	return nil
}

func (s *FileStorage) loadStates() error {
	states := make(map[string]internal.LearnerState)
	if err := decodeJSONFile(s.statesFile, &states); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if states != nil {
		s.states = states
	}
	return nil
}

// sortProfileIndex keeps a profile's sessions newest first. Callers hold the lock.
func (s *FileStorage) sortProfileIndex(profileID string) {
	idx := s.profileSessions[profileID]
	sort.Slice(idx, func(i, j int) bool {
		return idx[i].StartTime.After(idx[j].StartTime)
	})
}

func atomicWriteFileJSON(filePath string, data interface{}) error {
	tempFile := filePath + ".tmp"
	f, err := os.Create(tempFile)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}

	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}

	if err := f.Close(); err != nil {
		os.Remove(tempFile)
		return err
	}

	return os.Rename(tempFile, filePath)
}

func (s *FileStorage) saveAll() error {
	s.mu.RLock()
	sessions := make([]*internal.SleepSession, 0, len(s.sessions))
	for _, sess := range s.sessions {
		sessions = append(sessions, sess)
	}
	profiles := make([]*internal.BabyProfile, 0, len(s.profiles))
	for _, p := range s.profiles {
		profiles = append(profiles, p)
	}
	states := make(map[string]internal.LearnerState, len(s.states))
	for k, v := range s.states {
		states[k] = v
	}
	s.mu.RUnlock()

	if err := atomicWriteFileJSON(s.sessionsFile, sessions); err != nil {
		return err
	}
	if err := atomicWriteFileJSON(s.profilesFile, profiles); err != nil {
		return err
	}
	return atomicWriteFileJSON(s.statesFile, states)
}

func (s *FileStorage) saveWorker() {
	timer := time.NewTimer(s.saveDelay)
	defer timer.Stop()

	for {
		select {
		case <-s.saveChan:
			timer.Reset(s.saveDelay)
		case <-timer.C:
			if err := s.saveAll(); err != nil {
				s.logger.Errorf("storage: error saving data: %v", err)
			}
		case <-s.shutdownChan:
			return
		}
	}
}

func (s *FileStorage) scheduleSave() {
	select {
	case s.saveChan <- struct{}{}:
	default:
	}
}

func (s *FileStorage) Close() error {
	close(s.shutdownChan)

	// Save pending data synchronously on shutdown
	return s.saveAll()
}

// --- SessionRepository ---

func (s *FileStorage) SaveSession(ctx context.Context, sess *internal.SleepSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *sess
	s.sessions[cp.ID] = &cp
	s.profileSessions[cp.ProfileID] = append(s.profileSessions[cp.ProfileID], &cp)
	s.sortProfileIndex(cp.ProfileID)
	s.scheduleSave()
	return nil
}

func (s *FileStorage) UpdateSession(ctx context.Context, sess *internal.SleepSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.sessions[sess.ID]
	if !ok {
		return ErrNotFound
	}
	*existing = *sess
	s.sortProfileIndex(existing.ProfileID)
	s.scheduleSave()
	return nil
}

func (s *FileStorage) SoftDeleteSession(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.sessions[id]
	if !ok {
		return ErrNotFound
	}
	existing.Deleted = true
	existing.UpdatedAt = time.Now()
	s.scheduleSave()
	return nil
}

func (s *FileStorage) GetSession(ctx context.Context, id string) (*internal.SleepSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *sess
	return &cp, nil
}

func (s *FileStorage) ListSessions(ctx context.Context, profileID string) ([]internal.SleepSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx, ok := s.profileSessions[profileID]
	if !ok {
		return []internal.SleepSession{}, nil
	}
	sessions := make([]internal.SleepSession, len(idx))
	for i, sess := range idx {
		sessions[i] = *sess
	}
	return sessions, nil
}

// --- ProfileRepository ---

func (s *FileStorage) SaveProfile(ctx context.Context, p *internal.BabyProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *p
	s.profiles[cp.ID] = &cp
	s.scheduleSave()
	return nil
}

func (s *FileStorage) GetProfile(ctx context.Context, id string) (*internal.BabyProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.profiles[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *FileStorage) ListProfiles(ctx context.Context, userID string) ([]internal.BabyProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var profiles []internal.BabyProfile
	for _, p := range s.profiles {
		if p.UserID == userID {
			profiles = append(profiles, *p)
		}
	}
	sort.Slice(profiles, func(i, j int) bool {
		return profiles[i].CreatedAt.Before(profiles[j].CreatedAt)
	})
	if profiles == nil {
		profiles = []internal.BabyProfile{}
	}
	return profiles, nil
}

// --- LearnerStateRepository ---

func (s *FileStorage) PutLearnerState(ctx context.Context, profileID string, state internal.LearnerState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[profileID] = state
	s.scheduleSave()
	return nil
}

func (s *FileStorage) GetLearnerState(ctx context.Context, profileID string) (*internal.LearnerState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state, ok := s.states[profileID]
	if !ok {
		return nil, ErrNotFound
	}
	return &state, nil
}

// --- Compile-time assertions ---
var _ SessionRepository = (*FileStorage)(nil)
var _ ProfileRepository = (*FileStorage)(nil)
var _ LearnerStateRepository = (*FileStorage)(nil)
