// Package steam locates a Steam installation on Linux and resolves where an
// application is installed and which Proton prefix belongs to it.
//
// Discovery runs in three stages, each feeding the next:
//
//   - LocateRoot probes a fixed, ordered list of Steam root directories
//     (native, flatpak, system-wide) and accepts the first one that
//     contains a steamapps directory.
//   - EnumerateLibraries starts from root/steamapps and appends every
//     library listed in libraryfolders.vdf whose steamapps directory exists.
//     The result is deduplicated and keeps discovery order.
//   - ResolveInstall and ResolveCompatPrefix scan that list in order; the
//     first match wins.
//
// None of these functions fail. "Not installed here" is reported through
// boolean results and App.Found.
package steam
