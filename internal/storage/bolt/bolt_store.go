package bolt

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/brk3/flexhabits/internal/storage"
	"github.com/brk3/flexhabits/pkg/habit"
	"go.etcd.io/bbolt"
)

const (
	habitsBucket      = "habits"
	completionsBucket = "completions"
	moodsBucket       = "moods"
)

// Store keeps habits as JSON under habits/<id> and completions under
// completions/<habit id>/<date>, so a cursor walks one habit's records in
// date order. Moods live under moods/<date>.
type Store struct {
	db *bbolt.DB
}

func Open(path string) (*Store, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, err
	}

	s := &Store{db: db}

	if err := db.Update(func(tx *bbolt.Tx) error {
		for _, name := range []string{habitsBucket, completionsBucket, moodsBucket} {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) PutHabit(h habit.Habit) error {
	if h.ID == "" {
		return fmt.Errorf("habit id is required")
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		val, err := json.Marshal(h)
		if err != nil {
			return err
		}
		return tx.Bucket([]byte(habitsBucket)).Put([]byte(h.ID), val)
	})
}

func (s *Store) GetHabit(id string) (habit.Habit, error) {
	var h habit.Habit
	err := s.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket([]byte(habitsBucket)).Get([]byte(id))
		if v == nil {
			return fmt.Errorf("habit %q: %w", id, storage.ErrNotFound)
		}
		return json.Unmarshal(v, &h)
	})
	return h, err
}

func (s *Store) ListHabits() ([]habit.Habit, error) {
	out := []habit.Habit{}
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(habitsBucket)).ForEach(func(_, v []byte) error {
			var h habit.Habit
			if err := json.Unmarshal(v, &h); err != nil {
				return err
			}
			out = append(out, h)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt < out[j].CreatedAt
	})
	return out, nil
}

func (s *Store) DeleteHabit(id string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		habits := tx.Bucket([]byte(habitsBucket))
		if habits.Get([]byte(id)) == nil {
			return fmt.Errorf("habit %q: %w", id, storage.ErrNotFound)
		}
		if err := habits.Delete([]byte(id)); err != nil {
			return err
		}
		comps := tx.Bucket([]byte(completionsBucket))
		if comps.Bucket([]byte(id)) == nil {
			return nil
		}
		return comps.DeleteBucket([]byte(id))
	})
}

func (s *Store) PutCompletion(c habit.Completion) (habit.Completion, error) {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		if tx.Bucket([]byte(habitsBucket)).Get([]byte(c.HabitID)) == nil {
			return fmt.Errorf("habit %q: %w", c.HabitID, storage.ErrNotFound)
		}
		bucket, err := tx.Bucket([]byte(completionsBucket)).CreateBucketIfNotExists([]byte(c.HabitID))
		if err != nil {
			return err
		}
		if prev := bucket.Get([]byte(c.Date)); prev != nil {
			var old habit.Completion
			if err := json.Unmarshal(prev, &old); err != nil {
				return err
			}
			c.ID = old.ID
		}
		val, err := json.Marshal(c)
		if err != nil {
			return err
		}
		return bucket.Put([]byte(c.Date), val)
	})
	return c, err
}

func (s *Store) ListCompletions(habitID, start, end string) ([]habit.Completion, error) {
	out := []habit.Completion{}
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(completionsBucket)).Bucket([]byte(habitID))
		if bucket == nil {
			return nil
		}
		var err error
		out, err = scan(bucket, start, end, out)
		return err
	})
	return out, err
}

func (s *Store) ListCompletionsInRange(start, end string) ([]habit.Completion, error) {
	out := []habit.Completion{}
	err := s.db.View(func(tx *bbolt.Tx) error {
		comps := tx.Bucket([]byte(completionsBucket))
		return comps.ForEachBucket(func(k []byte) error {
			var err error
			out, err = scan(comps.Bucket(k), start, end, out)
			return err
		})
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date < out[j].Date
	})
	return out, nil
}

func scan(bucket *bbolt.Bucket, start, end string, out []habit.Completion) ([]habit.Completion, error) {
	c := bucket.Cursor()
	var k, v []byte
	if start == "" {
		k, v = c.First()
	} else {
		k, v = c.Seek([]byte(start))
	}
	for ; k != nil; k, v = c.Next() {
		if end != "" && bytes.Compare(k, []byte(end)) > 0 {
			break
		}
		var comp habit.Completion
		if err := json.Unmarshal(v, &comp); err != nil {
			return nil, err
		}
		out = append(out, comp)
	}
	return out, nil
}

func (s *Store) PutMood(m habit.Mood) (habit.Mood, error) {
	if m.Date == "" {
		return m, fmt.Errorf("mood date is required")
	}
	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(moodsBucket))
		if prev := bucket.Get([]byte(m.Date)); prev != nil {
			var old habit.Mood
			if err := json.Unmarshal(prev, &old); err != nil {
				return err
			}
			m.ID = old.ID
			m.CreatedAt = old.CreatedAt
		}
		val, err := json.Marshal(m)
		if err != nil {
			return err
		}
		return bucket.Put([]byte(m.Date), val)
	})
	return m, err
}

func (s *Store) ListMoods(start, end string) ([]habit.Mood, error) {
	out := []habit.Mood{}
	err := s.db.View(func(tx *bbolt.Tx) error {
		c := tx.Bucket([]byte(moodsBucket)).Cursor()
		var k, v []byte
		if start == "" {
			k, v = c.First()
		} else {
			k, v = c.Seek([]byte(start))
		}
		for ; k != nil; k, v = c.Next() {
			if end != "" && bytes.Compare(k, []byte(end)) > 0 {
				break
			}
			var m habit.Mood
			if err := json.Unmarshal(v, &m); err != nil {
				return err
			}
			out = append(out, m)
		}
		return nil
	})
	return out, err
}

var _ storage.Store = (*Store)(nil)
