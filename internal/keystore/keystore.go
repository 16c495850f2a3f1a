// Package keystore persists named Solana keypairs as one JSON file per
// account, in the solana-keygen file format (a JSON array of the 64 raw
// secret-key bytes). Files written here can be loaded by the standard
// Solana tooling and vice versa.
package keystore

import (
	"crypto/ed25519"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gagliardetto/solana-go"

	apperrors "github.com/noahgsolomon/pumpfun-mcp-server/internal/errors"
)

const (
	// MintPrefix marks keypair files that belong to token mints created by
	// the create-token operation. They are excluded from account listings.
	MintPrefix = "mint-"

	// fileExt is the extension every keypair file carries.
	fileExt = ".json"

	// ErrReadingKeypair is the public-key placeholder reported for a listing
	// entry whose backing file could not be decoded.
	ErrReadingKeypair = "Error reading keypair"
)

// Identity is a named keypair backed by a file under the store directory.
// For a given name the keypair is stable across calls: the store never
// regenerates a key for a name that already has a file.
type Identity struct {
	Name       string
	PublicKey  solana.PublicKey
	PrivateKey solana.PrivateKey
}

// Entry is one row of a store listing. PublicKey holds the base58 public key,
// or ErrReadingKeypair when the backing file failed to decode.
type Entry struct {
	Name      string
	PublicKey string
}

// Store maps account names to keypair files under a single directory.
type Store struct {
	dir string
}

// New returns a store rooted at dir. The directory is created lazily on the
// first write.
func New(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the directory backing the store.
func (s *Store) Dir() string {
	return s.dir
}

// EnsureDir creates the store directory, including parents, if absent.
func (s *Store) EnsureDir() error {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return apperrors.Wrap(apperrors.CodeIOError, fmt.Sprintf("create keys directory %s", s.dir), err)
	}
	return nil
}

// GetOrCreate loads the identity for name, generating and persisting a fresh
// one when no backing file exists. The fresh keypair is written to a hidden
// temp file and hard-linked into place: the link is the one atomic step, so
// two concurrent calls for the same new name converge on a single surviving
// keypair, and the loser of the race reads the winner's complete file, never
// a partial write.
func (s *Store) GetOrCreate(name string) (Identity, error) {
	if err := validateName(name); err != nil {
		return Identity{}, err
	}
	if err := s.EnsureDir(); err != nil {
		return Identity{}, err
	}

	id, err := s.load(name)
	if err == nil {
		return id, nil
	}
	if !os.IsNotExist(err) {
		return Identity{}, err
	}

	wallet := solana.NewWallet()
	data, err := encodeKey(wallet.PrivateKey)
	if err != nil {
		return Identity{}, apperrors.Wrap(apperrors.CodeIOError, fmt.Sprintf("encode keypair %s", name), err)
	}

	tmp, err := os.CreateTemp(s.dir, "."+name+"-*")
	if err != nil {
		return Identity{}, apperrors.Wrap(apperrors.CodeIOError, fmt.Sprintf("create temp keypair file for %s", name), err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return Identity{}, apperrors.Wrap(apperrors.CodeIOError, fmt.Sprintf("write keypair file %s", name), err)
	}
	if err := tmp.Close(); err != nil {
		return Identity{}, apperrors.Wrap(apperrors.CodeIOError, fmt.Sprintf("close keypair file %s", name), err)
	}

	if err := os.Link(tmp.Name(), s.path(name)); err != nil {
		if os.IsExist(err) {
			// Another call linked its file first; its keypair wins.
			return s.load(name)
		}
		return Identity{}, apperrors.Wrap(apperrors.CodeIOError, fmt.Sprintf("create keypair file %s", name), err)
	}

	return Identity{Name: name, PublicKey: wallet.PublicKey(), PrivateKey: wallet.PrivateKey}, nil
}

// List enumerates account keypairs under the store directory. Mint keypair
// files and files without the expected extension are skipped. A file that
// fails to decode still yields an entry, with PublicKey set to
// ErrReadingKeypair, so one corrupt file cannot hide the rest. A missing
// directory means zero accounts, not an error.
func (s *Store) List() ([]Entry, error) {
	dirents, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, apperrors.Wrap(apperrors.CodeIOError, fmt.Sprintf("read keys directory %s", s.dir), err)
	}

	var entries []Entry
	for _, dirent := range dirents {
		if dirent.IsDir() {
			continue
		}
		filename := dirent.Name()
		if !strings.HasSuffix(filename, fileExt) || strings.HasPrefix(filename, MintPrefix) {
			continue
		}
		name := strings.TrimSuffix(filename, fileExt)
		entry := Entry{Name: name}
		if id, err := s.load(name); err != nil {
			entry.PublicKey = ErrReadingKeypair
		} else {
			entry.PublicKey = id.PublicKey.String()
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// SaveMint persists a token-mint keypair as mint-<publicKey>.json. Mint files
// share the store directory with account files but never appear in listings.
func (s *Store) SaveMint(key solana.PrivateKey) (string, error) {
	if err := s.EnsureDir(); err != nil {
		return "", err
	}
	data, err := encodeKey(key)
	if err != nil {
		return "", apperrors.Wrap(apperrors.CodeIOError, "encode mint keypair", err)
	}
	path := filepath.Join(s.dir, MintPrefix+key.PublicKey().String()+fileExt)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", apperrors.Wrap(apperrors.CodeIOError, fmt.Sprintf("write mint keypair file %s", path), err)
	}
	return path, nil
}

// load reads and decodes the keypair file for name. A missing file surfaces
// as an os.IsNotExist error; undecodable contents surface as CORRUPT_KEY_FILE.
func (s *Store) load(name string) (Identity, error) {
	data, err := os.ReadFile(s.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return Identity{}, err
		}
		return Identity{}, apperrors.Wrap(apperrors.CodeIOError, fmt.Sprintf("read keypair file %s", name), err)
	}
	key, err := decodeKey(data)
	if err != nil {
		return Identity{}, apperrors.Wrap(apperrors.CodeCorruptKeyFile, fmt.Sprintf("keypair file %s is corrupt", name), err)
	}
	return Identity{Name: name, PublicKey: key.PublicKey(), PrivateKey: key}, nil
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name+fileExt)
}

// validateName rejects names that would escape the store directory or
// collide with the reserved mint file namespace.
func validateName(name string) error {
	if name == "" {
		return apperrors.New(apperrors.CodeValidation, "account name must not be empty")
	}
	if strings.ContainsAny(name, `/\`) || name != filepath.Base(name) {
		return apperrors.New(apperrors.CodeValidation, fmt.Sprintf("account name %q must not contain path separators", name))
	}
	if strings.HasPrefix(name, MintPrefix) {
		return apperrors.New(apperrors.CodeValidation, fmt.Sprintf("account name %q uses the reserved %q prefix", name, MintPrefix))
	}
	return nil
}

// encodeKey renders a secret key as a solana-keygen JSON byte array.
func encodeKey(key solana.PrivateKey) ([]byte, error) {
	if len(key) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("secret key has %d bytes, want %d", len(key), ed25519.PrivateKeySize)
	}
	values := make([]int, len(key))
	for i, b := range key {
		values[i] = int(b)
	}
	return json.Marshal(values)
}

// decodeKey parses a solana-keygen JSON byte array into a secret key. The
// embedded public-key half must match the half derived from the seed, so
// random bytes of the right length do not pass as a valid key.
func decodeKey(data []byte) (solana.PrivateKey, error) {
	var values []int
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("parse keypair file: %w", err)
	}
	if len(values) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("secret key has %d bytes, want %d", len(values), ed25519.PrivateKeySize)
	}
	key := make(solana.PrivateKey, len(values))
	for i, v := range values {
		if v < 0 || v > 255 {
			return nil, fmt.Errorf("secret key byte %d out of range: %d", i, v)
		}
		key[i] = byte(v)
	}
	derived := ed25519.NewKeyFromSeed(key[:ed25519.SeedSize])
	if !key.PublicKey().Equals(solana.PublicKeyFromBytes(derived[ed25519.SeedSize:])) {
		return nil, fmt.Errorf("secret key does not match its embedded public key")
	}
	return key, nil
}
