package recommend

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// PoseImage is a pose picture ready to inline into markup.
type PoseImage struct {
	MIMEType string
	Data     string // base64
}

var imageTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
}

// FirstImage loads the first picture, by file name, from dir/pose.
// It returns nil and no error when the pose has no picture.
func FirstImage(dir, pose string) (*PoseImage, error) {
	poseDir := filepath.Join(dir, pose)
	entries, err := os.ReadDir(poseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list images for %s: %w", pose, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if _, ok := imageTypes[strings.ToLower(filepath.Ext(e.Name()))]; ok {
			names = append(names, e.Name())
		}
	}
	if len(names) == 0 {
		return nil, nil
	}
	sort.Strings(names)

	data, err := os.ReadFile(filepath.Join(poseDir, names[0]))
	if err != nil {
		return nil, fmt.Errorf("failed to read image for %s: %w", pose, err)
	}
	return &PoseImage{
		MIMEType: imageTypes[strings.ToLower(filepath.Ext(names[0]))],
		Data:     base64.StdEncoding.EncodeToString(data),
	}, nil
}
