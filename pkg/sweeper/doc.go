// Package sweeper moves royalties held in CVN-1 escrow into each NFT's core
// vault, either once for a single NFT or on a schedule for a watch list.
package sweeper
