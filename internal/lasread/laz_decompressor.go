package lasread

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/golang/glog"
	"github.com/pkg/errors"
)

const DefaultLaszipPath = "laszip"

// Decompresses LAZ files into temporary LAS files by invoking an external laszip executable
type LazDecompressor struct {
	laszipPath string
}

func NewLazDecompressor(laszipPath string) *LazDecompressor {
	if laszipPath == "" {
		laszipPath = DefaultLaszipPath
	}
	return &LazDecompressor{
		laszipPath: laszipPath,
	}
}

// Decompresses the given LAZ file in a new temporary folder. The returned cleanup function removes the
// folder and must be called once the LAS file is no longer needed.
func (d *LazDecompressor) Decompress(lazPath string) (string, func(), error) {
	tmpDir, err := os.MkdirTemp("", "las_voxelizer-")
	if err != nil {
		return "", nil, errors.Wrap(err, "cannot create temporary folder")
	}
	cleanup := func() {
		if err := os.RemoveAll(tmpDir); err != nil {
			glog.Warningln("delete temporary folder failed.", err.Error())
		}
	}

	base := filepath.Base(lazPath)
	lasPath := filepath.Join(tmpDir, strings.TrimSuffix(base, filepath.Ext(base))+".las")

	if err := d.invokeLaszip(lazPath, lasPath); err != nil {
		cleanup()
		return "", nil, err
	}

	return lasPath, cleanup, nil
}

func (d *LazDecompressor) invokeLaszip(inputFileLocation, outputFileLocation string) error {
	cmdParams := []string{
		"-i", inputFileLocation,
		"-o", outputFileLocation,
	}

	runCmd := exec.Command(d.laszipPath, cmdParams...)
	glog.V(2).Infoln("start run laszip cmd", runCmd.String())

	var cmdStdout, cmdStderr bytes.Buffer
	runCmd.Stdout = &cmdStdout
	runCmd.Stderr = &cmdStderr

	if err := runCmd.Run(); err != nil {
		glog.Errorln("run failed", runCmd.String(), "cmd-stdout", cmdStdout.String(), "cmd-stderr", cmdStderr.String(), err.Error())
		return errors.Wrapf(err, "laszip failed decompressing %s", inputFileLocation)
	}

	if _, err := os.Stat(outputFileLocation); err != nil {
		return errors.Wrapf(err, "laszip produced no output for %s", inputFileLocation)
	}

	return nil
}
