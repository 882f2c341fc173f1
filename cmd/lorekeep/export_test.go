package main

// PrintError exposes printError to the external test package.
var PrintError = printError
