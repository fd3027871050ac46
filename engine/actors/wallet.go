package actors

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/schnorr"
	"github.com/nbd-wtf/go-nostr/nip06"
	"github.com/sasha-s/go-deadlock"
	"humandns/engine/library"
)

var currentWallet library.Wallet
var currentWalletMutex = &deadlock.Mutex{}

// MyWallet returns the current Wallet or creates a new one if there isn't one already
func MyWallet() library.Wallet {
	currentWalletMutex.Lock()
	defer currentWalletMutex.Unlock()
	if len(currentWallet.PrivateKey) == 0 {
		//try to restore wallet from disk
		if w, ok := getWalletFromDisk(); ok {
			currentWallet = w
		} else {
			w, err := NewWallet()
			if err != nil {
				LogCLI(err.Error(), 0)
				return library.Wallet{}
			}
			LogCLI("Generating a new wallet, write down the seed words if you want to keep it", 4)
			fmt.Printf("\n\n~NEW WALLET~\nPublic Key: %s\nPrivate Key: %s\nSeed Words: %s\n\n", w.Account, w.PrivateKey, w.SeedWords)
			currentWallet = w
			if err := persistCurrentWallet(); err != nil {
				LogCLI(err.Error(), 1)
			}
		}
	}
	return currentWallet
}

// NewWallet generates seed words and derives the nostr key pair from them (NIP-06).
func NewWallet() (library.Wallet, error) {
	seedWords, err := nip06.GenerateSeedWords()
	if err != nil {
		return library.Wallet{}, err
	}
	sk, err := nip06.PrivateKeyFromSeed(nip06.SeedFromWords(seedWords))
	if err != nil {
		return library.Wallet{}, err
	}
	pk, err := PubKey(sk)
	if err != nil {
		return library.Wallet{}, err
	}
	return library.Wallet{
		PrivateKey: sk,
		SeedWords:  seedWords,
		Account:    pk,
	}, nil
}

// PubKey returns the hex encoded x-only public key for a hex private key.
func PubKey(privateKey string) (library.Account, error) {
	keyb, err := hex.DecodeString(privateKey)
	if err != nil {
		return "", fmt.Errorf("error decoding key from hex: %w", err)
	}
	_, pubkey := btcec.PrivKeyFromBytes(keyb)
	return hex.EncodeToString(schnorr.SerializePubKey(pubkey)), nil
}

func walletPath() string {
	return MakeOrGetConfig().GetString("rootDir") + "wallet.dat"
}

func persistCurrentWallet() error {
	bytes, err := json.Marshal(currentWallet)
	if err != nil {
		return err
	}
	return os.WriteFile(walletPath(), bytes, 0600)
}

func getWalletFromDisk() (w library.Wallet, ok bool) {
	file, err := os.ReadFile(walletPath())
	if err != nil {
		LogCLI(fmt.Sprintf("Error getting wallet file: %s", err.Error()), 2)
		return library.Wallet{}, false
	}
	err = json.Unmarshal(file, &w)
	if err != nil {
		LogCLI(fmt.Sprintf("Error parsing wallet file: %s", err.Error()), 3)
		return library.Wallet{}, false
	}
	if len(w.PrivateKey) != 64 {
		return library.Wallet{}, false
	}
	return w, true
}
