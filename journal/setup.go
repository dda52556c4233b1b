// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package journal - local record of submitted requests
//
// entries are keyed by what a request does rather than by signature,
// so a caller can tell that a nonce or a registration already went
// through before sending it again
package journal

import (
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/bitmark-inc/logger"
	"github.com/syndtr/goleveldb/leveldb"
	ldb_opt "github.com/syndtr/goleveldb/leveldb/opt"
	ldb_storage "github.com/syndtr/goleveldb/leveldb/storage"

	"github.com/bitmark-inc/orecollective/fault"
)

// for database version
var versionKey = []byte{0x00, 'V', 'E', 'R', 'S', 'I', 'O', 'N'}

const currentVersion = 0x100

// Journal - a leveldb backed set of entries
type Journal struct {
	sync.Mutex
	db  *leveldb.DB
	log *logger.L
}

// Open - open or create the journal database in a directory
func Open(name string, log *logger.L) (*Journal, error) {
	if nil == log {
		return nil, fault.ErrInvalidLoggerChannel
	}
	opt := &ldb_opt.Options{
		ErrorIfExist:   false,
		ErrorIfMissing: false,
	}
	db, err := leveldb.OpenFile(name, opt)
	if nil != err {
		return nil, err
	}
	log.Infof("journal: %s", name)
	return setup(db, log)
}

// OpenStorage - open the journal on a goleveldb storage, e.g. a
// memory storage
func OpenStorage(stor ldb_storage.Storage, log *logger.L) (*Journal, error) {
	if nil == log {
		return nil, fault.ErrInvalidLoggerChannel
	}
	db, err := leveldb.Open(stor, nil)
	if nil != err {
		return nil, err
	}
	return setup(db, log)
}

func setup(db *leveldb.DB, log *logger.L) (*Journal, error) {
	version, err := getVersion(db)
	if nil != err {
		db.Close()
		return nil, err
	}

	switch version {
	case 0:
		err = putVersion(db, currentVersion)
		if nil != err {
			db.Close()
			return nil, err
		}
	case currentVersion:
	default:
		db.Close()
		log.Criticalf("journal version: %d  current version: %d", version, currentVersion)
		return nil, fmt.Errorf("journal version: %d  current version: %d", version, currentVersion)
	}

	return &Journal{
		db:  db,
		log: log,
	}, nil
}

// Close - release the database
func (j *Journal) Close() error {
	j.Lock()
	defer j.Unlock()

	if nil == j.db {
		return nil
	}
	err := j.db.Close()
	j.db = nil
	return err
}

func getVersion(db *leveldb.DB) (int, error) {
	versionValue, err := db.Get(versionKey, nil)
	if leveldb.ErrNotFound == err {
		return 0, nil
	} else if nil != err {
		return 0, err
	}

	if 4 != len(versionValue) {
		return 0, fmt.Errorf("incompatible journal version length: expected: %d  actual: %d", 4, len(versionValue))
	}
	return int(binary.BigEndian.Uint32(versionValue)), nil
}

func putVersion(db *leveldb.DB, version int) error {
	value := make([]byte, 4)
	binary.BigEndian.PutUint32(value, uint32(version))
	return db.Put(versionKey, value, nil)
}
