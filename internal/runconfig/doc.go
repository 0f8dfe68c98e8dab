// Package runconfig materializes the per-run configuration snapshot.
//
// For every invocation it resolves the working directory, creates the run
// directory tree
//
//	<workdir>/<outdir>/.vomix/log/vomix<YYYYMMDD_HHMMSS>/
//
// and writes config.yml into it. The snapshot is either a verbatim copy of a
// user-supplied config file, or the installation's template config with the
// run timestamp and every explicitly set module option laid over it.
//
// All inputs are read and validated before the first directory is created,
// so a missing or broken config file leaves nothing behind.
package runconfig
