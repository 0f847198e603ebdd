/*
Package filesystem holds the filesystem plumbing shared by the tree
obfuscator, the frame coordinator and the listing endpoints.

# Retry

StatWithRetry and ReadDirWithRetry retry NFS stale file handle errors
(ESTALE) with exponential backoff; every other error returns immediately.
Renames are never retried because a rename that reported ESTALE may already
have happened.

	info, err := filesystem.StatWithRetry(path, filesystem.DefaultRetryConfig())

# Nodes

ReadDir lists a directory as Nodes. A Node carries both the physical name on
disk and the display name recovered by namecodec, so callers never decode
names themselves:

	nodes, err := filesystem.ReadDir("/home/me/videos")
	for _, n := range nodes {
		fmt.Println(n.Name, n.IsEncoded)
	}

# Videos

ListVideos walks a tree with fastwalk and returns every file whose display
name has a video extension, including files whose on-disk names are encoded.
*/
package filesystem
