// Package platform integrates with the host desktop: desktop environment
// detection, revealing files in the file manager, opening files with the
// default application and a few OS resource helpers (filesystem space, file
// descriptor limit, I/O priority, MAC address).
package platform
