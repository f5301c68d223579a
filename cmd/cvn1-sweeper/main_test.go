package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWatchListMergesFlagsAndFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nfts.txt")
	require.NoError(t, os.WriteFile(path, []byte("# list\n0x2\n0xB\n"), 0o600))

	nfts, err := watchList([]string{"0xb", "0x1"}, path)
	require.NoError(t, err)
	require.Equal(t, []string{
		"0x0000000000000000000000000000000000000000000000000000000000000001",
		"0x0000000000000000000000000000000000000000000000000000000000000002",
		"0x000000000000000000000000000000000000000000000000000000000000000b",
	}, nfts)
}

func TestWatchListRequiresAddresses(t *testing.T) {
	_, err := watchList(nil, "")
	require.Error(t, err)

	_, err = watchList([]string{"0xnothex"}, "")
	require.Error(t, err)
}

func TestAppRejectsBadLogLevel(t *testing.T) {
	err := newApp().Run([]string{
		"cvn1-sweeper",
		"--private-key", "d409fcb475960417684d0bfe4c424a13c9e6db58fdff1d5635f11370ded185e9",
		"--log-level", "loud",
		"sweep-once", "--nft", "0x1", "--fa-metadata", "0xa",
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid log level")
}

func TestAppRejectsBadPrivateKey(t *testing.T) {
	err := newApp().Run([]string{
		"cvn1-sweeper",
		"--private-key", "not-a-key",
		"sweep-once", "--nft", "0x1", "--fa-metadata", "0xa",
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "private-key")
}

func TestAppRequiresNFTsForWatch(t *testing.T) {
	err := newApp().Run([]string{
		"cvn1-sweeper",
		"--private-key", "d409fcb475960417684d0bfe4c424a13c9e6db58fdff1d5635f11370ded185e9",
		"watch", "--fa-metadata", "0xa",
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "watch mode requires")
}
