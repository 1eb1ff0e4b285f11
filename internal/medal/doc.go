package medal

// Package medal knows the shape of Medal clip links and talks to the Medal
// content API to turn a clip link into a direct media address.
