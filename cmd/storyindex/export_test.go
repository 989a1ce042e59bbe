package main

// WriteArtifacts exposes writeArtifacts to the external test package.
var WriteArtifacts = writeArtifacts

// RebuildWordCloud exposes rebuildWordCloud to the external test package.
var RebuildWordCloud = rebuildWordCloud
