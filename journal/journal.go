// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package journal

import (
	"encoding/binary"
	"encoding/json"
	"time"

	"github.com/syndtr/goleveldb/leveldb"
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"

	"github.com/bitmark-inc/orecollective/fault"
	"github.com/bitmark-inc/orecollective/identity"
)

// key prefixes
const (
	registerPrefix = 'R'
	minePrefix     = 'M'

	mineKeySize = 1 + identity.Size + 8
)

// State - what is known about the request of an entry
type State string

// entry states
const (
	Pending   State = "pending"
	Succeeded State = "succeeded"
	Failed    State = "failed"
)

// Key - the semantic identity of a request
type Key []byte

// RegisterKey - a registration is identified by its miner
func RegisterKey(miner identity.Identity) Key {
	key := make(Key, 0, 1+identity.Size)
	key = append(key, registerPrefix)
	return append(key, miner[:]...)
}

// MineKey - a solution is identified by its miner and nonce
//
// the nonce is big endian so a miner's keys iterate in nonce order
func MineKey(miner identity.Identity, nonce uint64) Key {
	key := make(Key, 0, mineKeySize)
	key = append(key, minePrefix)
	key = append(key, miner[:]...)
	return binary.BigEndian.AppendUint64(key, nonce)
}

// Miner - the miner a key refers to
func (k Key) Miner() (identity.Identity, error) {
	if len(k) < 1+identity.Size {
		return identity.Identity{}, fault.ErrInvalidJournalEntry
	}
	return identity.FromBytes(k[1 : 1+identity.Size])
}

// Nonce - the nonce of a mine key
func (k Key) Nonce() (uint64, bool) {
	if mineKeySize != len(k) || minePrefix != k[0] {
		return 0, false
	}
	return binary.BigEndian.Uint64(k[1+identity.Size:]), true
}

// Entry - the submissions made for one request
type Entry struct {
	Action     string               `json:"action"`
	Attempt    string               `json:"attempt"`
	State      State                `json:"state"`
	Signatures []identity.Signature `json:"signatures"`
	Updated    time.Time            `json:"updated"`
}

// Latest - the most recent signature
func (e *Entry) Latest() identity.Signature {
	if 0 == len(e.Signatures) {
		return identity.Signature{}
	}
	return e.Signatures[len(e.Signatures)-1]
}

// Check - refuse a request that already succeeded
func (j *Journal) Check(key Key) error {
	j.Lock()
	defer j.Unlock()

	e, err := j.get(key)
	if fault.ErrEntryNotFound == err {
		return nil
	}
	if nil != err {
		return err
	}
	if Succeeded == e.State {
		return fault.ErrAlreadySucceeded
	}
	return nil
}

// Record - add a submitted signature to the entry for key
//
// a request that already succeeded is refused
func (j *Journal) Record(key Key, action string, attempt string, signature identity.Signature) error {
	j.Lock()
	defer j.Unlock()

	e, err := j.get(key)
	if fault.ErrEntryNotFound == err {
		e = &Entry{
			Action:     action,
			Signatures: make([]identity.Signature, 0, 1),
		}
	} else if nil != err {
		return err
	}
	if Succeeded == e.State {
		return fault.ErrAlreadySucceeded
	}

	e.Attempt = attempt
	e.State = Pending
	e.Signatures = append(e.Signatures, signature)
	e.Updated = time.Now().UTC()

	j.log.Debugf("record: %x  action: %s  signature: %s  count: %d", []byte(key), action, signature, len(e.Signatures))
	return j.put(key, e)
}

// Mark - set the outcome of the entry for key
//
// a succeeded entry is never moved to another state: the outcome of an
// older signature of the same request must not hide an earlier success
func (j *Journal) Mark(key Key, state State) error {
	j.Lock()
	defer j.Unlock()

	e, err := j.get(key)
	if nil != err {
		return err
	}
	if Succeeded == e.State {
		if Succeeded != state {
			j.log.Warnf("mark: %x  action: %s  ignored state: %s", []byte(key), e.Action, state)
		}
		return nil
	}
	e.State = state
	e.Updated = time.Now().UTC()

	j.log.Infof("mark: %x  action: %s  state: %s", []byte(key), e.Action, state)
	return j.put(key, e)
}

// Get - the entry for key
func (j *Journal) Get(key Key) (*Entry, error) {
	j.Lock()
	defer j.Unlock()
	return j.get(key)
}

// Pending - keys and entries whose outcome is not yet known
func (j *Journal) Pending() (map[string]*Entry, error) {
	j.Lock()
	defer j.Unlock()

	if nil == j.db {
		return nil, fault.ErrNotInitialised
	}

	result := make(map[string]*Entry)
	for _, prefix := range []byte{registerPrefix, minePrefix} {
		iter := j.db.NewIterator(ldb_util.BytesPrefix([]byte{prefix}), nil)
		for iter.Next() {
			var e Entry
			err := json.Unmarshal(iter.Value(), &e)
			if nil != err {
				iter.Release()
				return nil, fault.ErrInvalidJournalEntry
			}
			if Pending == e.State {
				result[string(iter.Key())] = &e
			}
		}
		iter.Release()
		err := iter.Error()
		if nil != err {
			return nil, err
		}
	}
	return result, nil
}

func (j *Journal) get(key Key) (*Entry, error) {
	if nil == j.db {
		return nil, fault.ErrNotInitialised
	}
	value, err := j.db.Get(key, nil)
	if leveldb.ErrNotFound == err {
		return nil, fault.ErrEntryNotFound
	}
	if nil != err {
		return nil, err
	}

	var e Entry
	err = json.Unmarshal(value, &e)
	if nil != err {
		return nil, fault.ErrInvalidJournalEntry
	}
	return &e, nil
}

func (j *Journal) put(key Key, e *Entry) error {
	value, err := json.Marshal(e)
	if nil != err {
		return err
	}
	return j.db.Put(key, value, nil)
}
