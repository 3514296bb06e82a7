package minecraft

// Package minecraft installs and launches vanilla Minecraft versions. It reads
// Mojang's version manifest, downloads version files (libraries, natives,
// assets, client jar) with SHA-1 verification, and assembles the java command
// line for an installed version. Callers treat it as an opaque collaborator:
// list versions, install a version, build a command.
